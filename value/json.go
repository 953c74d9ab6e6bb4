package value

import (
	"bytes"
	"encoding/json"
	"math"
)

// MarshalJSON renders v as JSON. UCL is a JSON superset, so every ValueTree
// this package can produce has a faithful JSON rendering, even though
// generic struct binding remains the external sink's job. Non-finite floats
// are rendered as their IEEE-754 string form ("Infinity"/"-Infinity"/"NaN")
// since encoding/json itself refuses to encode them.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInteger:
		b, err := json.Marshal(v.Int)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindFloat:
		if math.IsInf(v.Float, 1) {
			buf.WriteString(`"Infinity"`)
		} else if math.IsInf(v.Float, -1) {
			buf.WriteString(`"-Infinity"`)
		} else if math.IsNaN(v.Float) {
			buf.WriteString(`"NaN"`)
		} else {
			b, err := json.Marshal(v.Float)
			if err != nil {
				return err
			}
			buf.Write(b)
		}
	case KindString:
		b, err := json.Marshal(v.Str.String())
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.Object.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			ev, _ := v.Object.Get(k)
			if err := ev.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
