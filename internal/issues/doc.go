// Package issues renders and announces deprecation notices for Gray Logic
// Strings.
//
// An issue is a user-facing notice declared in an integration's string
// table under the issues namespace (issues.<id>.title / .description).
// Raising code supplies a Notice with placeholder values; this package
// resolves the display strings and publishes the result.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                          issues                               │
//	│                                                               │
//	│  ┌──────────────────┐        ┌──────────────────┐            │
//	│  │     Renderer     │        │     Announcer    │            │
//	│  │   (render.go)    │───────▶│  (announcer.go)  │            │
//	│  │                  │        │                  │            │
//	│  │ • Resolve title  │        │ • Retained JSON  │            │
//	│  │ • Resolve descr. │        │ • One topic per  │            │
//	│  │ • Placeholders   │        │   issue          │            │
//	│  └──────────────────┘        └──────────────────┘            │
//	│           │                           │                       │
//	└───────────│───────────────────────────│───────────────────────┘
//	            ▼                           ▼
//	    strtab.Resolver          graylogic/strings/issue/{domain}/{id}
//
// # Usage
//
//	renderer := issues.NewRenderer(resolver)
//	announcer := issues.NewAnnouncer(mqttClient)
//
//	rendered, err := renderer.Render(issues.Notice{
//	    IssueID:     "deprecated_light_fan_entity",
//	    IssueDomain: "lutron",
//	    Severity:    issues.SeverityWarning,
//	    Placeholders: map[string]string{
//	        "entity": "light.kitchen_fan",
//	        "info":   "automation.turn_on_fan",
//	    },
//	}, "")
//	if err != nil {
//	    return err
//	}
//	return announcer.Announce(ctx, rendered)
//
// There is no persistence and no deduplication here: the raising side owns
// issue lifecycle, this package only turns notices into display strings.
package issues
