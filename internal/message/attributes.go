package message

import "strings"

// NotAvailable is rendered for any attribute the event did not carry.
const NotAvailable = "N/A"

// emptyPayload is parsed when the event carries no payload attribute.
const emptyPayload = "{}"

// Attributes is the key/value bag carried by a cluster notification event.
// A nil field means the key was absent, which is different from an empty value.
type Attributes struct {
	TypeURL     *string `json:"type_url,omitempty"`
	ClusterName *string `json:"cluster_name,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	Payload     *string `json:"payload,omitempty"`
}

// AttributesFromMap builds Attributes from a plain string map, such as the
// attributes of a Pub/Sub message. Unknown keys are ignored.
func AttributesFromMap(m map[string]string) Attributes {
	lookup := func(key string) *string {
		if v, ok := m[key]; ok {
			return &v
		}
		return nil
	}

	return Attributes{
		TypeURL:     lookup("type_url"),
		ClusterName: lookup("cluster_name"),
		ProjectID:   lookup("project_id"),
		Payload:     lookup("payload"),
	}
}

// Resolved holds the attribute values after defaults have been applied.
type Resolved struct {
	TypeURL     string
	ClusterName string
	ProjectID   string
	Payload     string
}

// Resolve applies the defaults for absent attributes.
func (a Attributes) Resolve() Resolved {
	return Resolved{
		TypeURL:     valueOr(a.TypeURL, NotAvailable),
		ClusterName: valueOr(a.ClusterName, NotAvailable),
		ProjectID:   valueOr(a.ProjectID, NotAvailable),
		Payload:     valueOr(a.Payload, emptyPayload),
	}
}

// ShortTypeName returns the part of the type URL after its last dot.
//
// Example: "type.googleapis.com/google.container.v1beta1.UpgradeEvent" -> "UpgradeEvent"
func (r Resolved) ShortTypeName() string {
	return r.TypeURL[strings.LastIndex(r.TypeURL, ".")+1:]
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
