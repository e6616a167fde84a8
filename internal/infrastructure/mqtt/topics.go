package mqtt

import "fmt"

// Topic prefixes for the strings service.
//
// The service shares the graylogic/ namespace with the rest of the platform
// and claims the strings/ subtree: graylogic/strings/{category}/...
const (
	// TopicPrefixStrings is the base for all strings service topics.
	TopicPrefixStrings = "graylogic/strings"
)

// Topics provides builders for strings service MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	noticeTopic := topics.IssueNotice("lutron", "deprecated_light_fan_entity")
//	// Returns: "graylogic/strings/issue/lutron/deprecated_light_fan_entity"
type Topics struct{}

// ServiceStatus returns the service status topic.
//
// Online/offline status and the LWT are published here, retained.
//
// Example: graylogic/strings/status
func (Topics) ServiceStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixStrings)
}

// IssueNotice returns the topic for a rendered issue notice.
//
// Notices are retained so UI panels that subscribe late still see the
// current set of open notices.
//
// Example: graylogic/strings/issue/lutron/deprecated_light_fan_entity
func (Topics) IssueNotice(integration, issueID string) string {
	return fmt.Sprintf("%s/issue/%s/%s", TopicPrefixStrings, integration, issueID)
}

// CatalogCompiled returns the topic for catalog compilation events.
//
// A summary of the compiled catalog is published here after startup so
// other services know which string tables are available.
//
// Example: graylogic/strings/catalog/compiled
func (Topics) CatalogCompiled() string {
	return fmt.Sprintf("%s/catalog/compiled", TopicPrefixStrings)
}
