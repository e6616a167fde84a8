// Package strtab implements localized string tables for Gray Logic
// integrations.
//
// A string table is the declarative resource an integration ships alongside
// its code: labels and error messages for its setup flow, display names for
// enumerated entity states, and titles/descriptions for user-facing issue
// notices. Tables contain no logic — they are static trees of string keys
// and string values, loaded once and never mutated.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│                            strtab                                     │
//	│                                                                       │
//	│  ┌───────────────┐   ┌────────────────┐   ┌───────────────────────┐  │
//	│  │    Parse      │   │    Validate    │   │       Resolver        │  │
//	│  │  (parse.go)   │──▶│ (validation.go)│──▶│     (resolver.go)     │  │
//	│  │               │   │                │   │                       │  │
//	│  │ • JSON / YAML │   │ • namespaces   │   │ • locale negotiation  │  │
//	│  │ • dup keys    │   │ • references   │   │ • [%key:...%] lookup  │  │
//	│  │ • string tree │   │ • issue shape  │   │ • {x} substitution    │  │
//	│  └───────────────┘   └────────────────┘   └───────────────────────┘  │
//	└──────────────────────────────────────────────────────────────────────┘
//
// # Document shape
//
// Three top-level namespaces are recognised:
//
//   - config: setup-wizard strings — step.<id>.{title,description,data,
//     data_description}, error.<code>, abort.<reason>
//   - entity: per-platform display names for entity states and attributes
//   - issues: per issue-id {title,description} diagnostic notices
//
// Leaf values are either literals, which may carry {placeholder} tokens
// substituted by the caller at render time, or reference tokens such as
//
//	[%key:common::config_flow::error::cannot_connect%]
//
// which delegate to the shared common table (config_flow.error.cannot_connect).
//
// # Usage
//
//	common, _ := strtab.Parse(commonJSON, strtab.FormatJSON)
//	table, _ := strtab.Parse(lutronJSON, strtab.FormatJSON)
//	if err := strtab.Validate(table); err != nil {
//	    return err
//	}
//
//	resolver, _ := strtab.NewResolver(common, "en")
//	resolver.AddTable("lutron", "en", table)
//
//	msg, _ := resolver.Resolve("lutron", "en",
//	    "issues.deprecated_light_fan_entity.description",
//	    map[string]string{"entity": "light.kitchen_fan", "info": "automation.fan_on"})
//
// # Thread Safety
//
// Tables are immutable after parsing; resolvers are immutable after startup
// registration. All read paths are safe for unlimited concurrent use with
// no locking.
package strtab
