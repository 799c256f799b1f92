package domain

// RawRecord is a stored document exactly as fetched from persistence, with
// the row id merged in under "id". Drivers, routes and orders are imported
// from heterogeneous sources, so field names and value types vary between
// records; only the input normalizer in the service layer is allowed to
// interpret a RawRecord.
type RawRecord map[string]any

// ID returns the record's document id, or "" if absent.
func (r RawRecord) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}
