// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package build describes the project and session a filtering request refers
// to. The filtering request treats both as opaque references; this package
// gives them a concrete shape so they can be loaded from a project descriptor
// and reported.
//
// A project descriptor is a YAML document named resfilter-project.yaml (or
// project.yaml) in the project base directory:
//
//	groupId: org.example
//	artifactId: webapp
//	version: 1.4.0
//	properties:
//	  db.url: jdbc:h2:mem:test
//	build:
//	  filters:
//	    - src/main/filters/default.properties
//	profiles:
//	  prod:
//	    properties:
//	      db.url: jdbc:postgresql://db/prod
//	    filters:
//	      - src/main/filters/prod.properties
package build
