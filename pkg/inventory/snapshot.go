package inventory

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"gopkg.in/yaml.v3"
)

// Category names for the record sets a snapshot can carry, in their
// canonical emission order.
const (
	CategoryNodes      = "nodes"
	CategoryPods       = "pods"
	CategoryContainers = "containers"
	CategoryProcesses  = "processes"
)

// Categories lists every known category in canonical order.
func Categories() []string {
	return []string{CategoryNodes, CategoryPods, CategoryContainers, CategoryProcesses}
}

// Snapshot is the aggregate of one inventory run: ordered record sets plus
// run metadata. Snapshots are transient, built fresh per invocation.
type Snapshot struct {
	Metadata map[string]string
	Sets     []*RecordSet
}

// NewSnapshot creates an empty snapshot stamped with a fresh run ID and the
// given collection time.
func NewSnapshot(version string, collectedAt time.Time) *Snapshot {
	return &Snapshot{
		Metadata: map[string]string{
			"snapshot-id":  uuid.New().String(),
			"collected-at": collectedAt.UTC().Format(time.RFC3339),
			"tool-version": version,
		},
	}
}

// Add appends a record set, preserving insertion order of categories.
func (s *Snapshot) Add(set *RecordSet) {
	s.Sets = append(s.Sets, set)
}

// Set returns the record set for a category, or nil when absent.
func (s *Snapshot) Set(category string) *RecordSet {
	for _, set := range s.Sets {
		if set.Category == category {
			return set
		}
	}
	return nil
}

// TotalRecords returns the record count across all sets.
func (s *Snapshot) TotalRecords() int {
	total := 0
	for _, set := range s.Sets {
		total += set.Len()
	}
	return total
}

// MarshalJSON emits metadata followed by one key per category, categories in
// their collection order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteString(`{"metadata":`)
	meta, err := json.Marshal(s.Metadata)
	if err != nil {
		return nil, err
	}
	buf.Write(meta)
	buf.WriteString(`,"inventory":{`)
	for i, set := range s.Sets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(set.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		records := set.Records
		if records == nil {
			records = []*Record{}
		}
		encoded, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteString("}}")
	return []byte(buf.String()), nil
}

// MarshalYAML mirrors MarshalJSON, keeping category order.
func (s *Snapshot) MarshalYAML() (any, error) {
	inventory := &yaml.Node{Kind: yaml.MappingNode}
	for _, set := range s.Sets {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(set.Category); err != nil {
			return nil, err
		}
		records := set.Records
		if records == nil {
			records = []*Record{}
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(records); err != nil {
			return nil, err
		}
		inventory.Content = append(inventory.Content, keyNode, valNode)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	metaKey := &yaml.Node{}
	if err := metaKey.Encode("metadata"); err != nil {
		return nil, err
	}
	metaVal := &yaml.Node{}
	if err := metaVal.Encode(s.Metadata); err != nil {
		return nil, err
	}
	invKey := &yaml.Node{}
	if err := invKey.Encode("inventory"); err != nil {
		return nil, err
	}
	root.Content = append(root.Content, metaKey, metaVal, invKey, inventory)
	return root, nil
}
