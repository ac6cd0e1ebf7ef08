package accounting

// ExportedDict is an insertion ordered string mapping. It is the flat form of an
// event (or summary line) right before it becomes a CSV row.
type ExportedDict struct {
	keys   []string
	values map[string]string
}

func NewExportedDict() *ExportedDict {
	return &ExportedDict{values: make(map[string]string)}
}

// NewExportedDictWithFields creates a dict holding every field with an empty value
func NewExportedDictWithFields(fields []string) *ExportedDict {
	d := NewExportedDict()
	for _, f := range fields {
		d.Set(f, "")
	}
	return d
}

func (d *ExportedDict) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *ExportedDict) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Value returns the value for key or the empty string
func (d *ExportedDict) Value(key string) string {
	return d.values[key]
}

func (d *ExportedDict) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d *ExportedDict) Len() int {
	return len(d.keys)
}

func (d *ExportedDict) Copy() *ExportedDict {
	c := &ExportedDict{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]string, len(d.values)),
	}
	copy(c.keys, d.keys)
	for k, v := range d.values {
		c.values[k] = v
	}
	return c
}
