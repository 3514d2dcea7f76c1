// Package config loads the mockswitch configuration file.
//
// A configuration file is YAML (.yaml, .yml) or JSON (.json). It declares the
// handler groups, where handler state is persisted, and how the worker and the
// admin API listen:
//
//	locale: en
//	storage:
//	  backend: file
//	worker:
//	  addr: ":4280"
//	  passthrough: http://localhost:8080
//	handlerFiles:
//	  - handlers/**/*.yaml
//	groups:
//	  - name: users
//	    handlers:
//	      - id: get-users
//	        description: List users
//	        method: GET
//	        path: /users
//	        response:
//	          status: 200
//	          json: [{"id": 1, "name": "Ada"}]
//
// Handler files matched by handlerFiles hold a single group or a list of
// groups in the same shape as the groups key. Paths are resolved relative to
// the configuration file. ${VAR} and ${VAR:-default} are expanded from the
// environment before parsing.
//
// Usage:
//
//	cfg, err := config.Load("mockswitch.yaml")
//	if err != nil {
//	    return err
//	}
//	groups, err := cfg.BuildGroups()
package config
