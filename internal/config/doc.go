// Package config loads the report engine configuration.
//
// Values are layered in this order, later sources winning:
//
//	1. Default() values, including the built-in keyword dictionaries
//	2. An optional YAML file (OSS_CONFIG_FILE, or config.yaml / configs/config.yaml)
//	3. Environment variables with the OSS_ prefix
//
// Examples:
//
//	OSS_SERVER_PORT=8090
//	OSS_LOGGING_LEVEL=debug
//	OSS_REPORT_GOVERNING_AUTHORITY=Gubernur
//	OSS_REPORT_UNFILTERED_SECTIONS=permit_by_authority,registration_totals
//	OSS_REPORT_RISK_ALIASES=R:Rendah,T:Tinggi
//	OSS_PATHS_DATA_DIR=/srv/oss/data
//
// Keyword dictionaries can only be overridden from YAML. An override replaces
// the pattern list of one (dataset, field) pair and leaves the others alone:
//
//	keywords:
//	  fields:
//	    registration:
//	      REGION: ["kab kota", "re:^kabupaten"]
//	  sheets:
//	    permit: ["risiko", "kbli"]
//
// Patterns are plain substrings, "exact:" whole-header matches or "re:"
// regular expressions; see the resolver package.
package config
