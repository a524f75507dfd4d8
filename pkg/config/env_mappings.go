package config

import (
	"fmt"
	"reflect"
	"sync"
)

// Field is one leaf setting of Config, addressed by its dotted koanf path.
type Field struct {
	Path      string
	Env       string
	Sensitive bool
	index     []int
}

// Value returns the field's value in cfg. Values implementing fmt.Stringer
// (durations, secrets) are rendered through String, so secrets stay redacted.
func (f Field) Value(cfg *Config) any {
	v := reflect.ValueOf(cfg).Elem().FieldByIndex(f.index).Interface()
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

var fields = sync.OnceValue(func() []Field {
	var out []Field
	collectFields(reflect.TypeOf(Config{}), "", nil, &out)
	return out
})

func collectFields(t reflect.Type, prefix string, index []int, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("koanf")
		if !sf.IsExported() || tag == "" || tag == "-" {
			continue
		}
		path := tag
		if prefix != "" {
			path = prefix + "." + tag
		}
		idx := append(append([]int(nil), index...), i)
		if sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, path, idx, out)
			continue
		}
		env := sf.Tag.Get("env")
		if env == "-" {
			env = ""
		}
		*out = append(*out, Field{
			Path:      path,
			Env:       env,
			Sensitive: sf.Tag.Get("sensitive") == "true",
			index:     idx,
		})
	}
}

// Fields lists every leaf setting in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields()))
	copy(out, fields())
	return out
}

// GenerateEnvToConfigMap maps each declared environment variable to its
// config path. Only variables named by `env` tags are ever read.
func GenerateEnvToConfigMap() map[string]string {
	result := make(map[string]string)
	for _, f := range fields() {
		if f.Env != "" {
			result[f.Env] = f.Path
		}
	}
	return result
}
