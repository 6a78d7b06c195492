package bootstrap

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// SetConfigFromEnvVars populates cfg's `env:"..."` tagged fields from the
// process environment. Supports string, bool and int kinds (Config uses
// the string and int ones) — mirrors the teacher's libCommons helper of
// the same name without pulling in its whole config package.
func SetConfigFromEnvVars(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bootstrap: SetConfigFromEnvVars requires a pointer to struct")
	}

	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		key, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}

		raw, present := os.LookupEnv(key)
		if !present {
			continue
		}

		fv := v.Field(i)

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("bootstrap: env %s: %w", key, err)
			}

			fv.SetBool(b)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("bootstrap: env %s: %w", key, err)
			}

			fv.SetInt(n)
		default:
			return fmt.Errorf("bootstrap: env %s: unsupported field kind %s", key, fv.Kind())
		}
	}

	return nil
}
