// Package mqtt provides MQTT connectivity for Gray Logic Strings.
//
// This package wraps the Eclipse Paho MQTT client to provide:
//   - Connection management with auto-reconnect
//   - Last Will and Testament (LWT) for offline detection
//   - Publishing of status messages and rendered issue notices
//   - Consistent topic naming via the Topics builders
//
// The strings service is publish-only: it announces its own status and
// the issue notices rendered from the compiled catalog. It never
// subscribes to other services' traffic.
//
// # Topic Hierarchy
//
//	graylogic/strings/status                    Service online/offline (retained, LWT)
//	graylogic/strings/catalog/compiled          Catalog compilation summary
//	graylogic/strings/issue/{integration}/{id}  Rendered issue notices (retained)
//
// Consumers such as wall panels subscribe to graylogic/strings/issue/+/+
// to receive every open notice.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.IssueNotice("lutron", "deprecated_light_fan_entity")
//	err = client.PublishRetained(topic, payload)
package mqtt
