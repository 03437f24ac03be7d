package tourism

import (
	"encoding/json"
	"fmt"
)

// ItemToRecord converts an item into the document shape stored by
// DocumentStores: its JSON fields keyed by the json tags.
func ItemToRecord(item ContentItem) (Record, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode item %s: %w", item.ID, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return Record{}, fmt.Errorf("failed to encode item %s: %w", item.ID, err)
	}
	delete(fields, "id")

	return Record{ID: item.ID, Fields: fields}, nil
}

// ItemsToRecords converts every item with ItemToRecord.
func ItemsToRecords(items []ContentItem) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec, err := ItemToRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
