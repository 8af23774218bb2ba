// Package catalog declares agents in YAML.
//
//	goal: report
//	agents:
//	  - name: outline
//	    inputs: [topic]
//	    output: outline
//	    template: "Outline for {{ topic }}"
//	  - name: write
//	    inputs: [outline, audience]
//	    output: report
//	    template: "{{ outline }} written for {{ audience }}"
//
// Each declaration becomes a TemplateAgent that renders its Jinja template
// with the values of the run's scope. Templates cannot include, extend or
// import other templates.
//
// A Loader keeps the latest valid catalog and the workflow built from it and
// reloads both when the file is written.
package catalog
