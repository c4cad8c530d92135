package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"ridemedia-backend/internal/apperrors"
)

type ContentKind int

const (
	KindNull ContentKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// ContentValue - содержимое блока CMS: строка, число, bool, массив или объект.
// Порядок ключей объекта сохраняется. Копия значения делит вложенные
// массивы и карты с оригиналом, для независимой копии есть Clone.
type ContentValue struct {
	Kind   ContentKind
	Str    string
	Num    json.Number
	Bool   bool
	Items  []ContentValue
	Keys   []string
	Fields map[string]ContentValue
}

func NullValue() ContentValue { return ContentValue{} }

func StringValue(s string) ContentValue { return ContentValue{Kind: KindString, Str: s} }

func NumberValue(n json.Number) ContentValue { return ContentValue{Kind: KindNumber, Num: n} }

func BoolValue(b bool) ContentValue { return ContentValue{Kind: KindBool, Bool: b} }

func ArrayValue(items ...ContentValue) ContentValue {
	if items == nil {
		items = []ContentValue{}
	}
	return ContentValue{Kind: KindArray, Items: items}
}

func ObjectValue() ContentValue {
	return ContentValue{Kind: KindObject, Fields: map[string]ContentValue{}}
}

// Get возвращает поле объекта
func (v ContentValue) Get(key string) (ContentValue, bool) {
	if v.Kind != KindObject {
		return ContentValue{}, false
	}
	field, ok := v.Fields[key]
	return field, ok
}

// Set добавляет или заменяет поле объекта, новый ключ встает в конец
func (v *ContentValue) Set(key string, value ContentValue) {
	if v.Kind != KindObject {
		*v = ObjectValue()
	}
	if v.Fields == nil {
		v.Fields = map[string]ContentValue{}
	}
	if _, exists := v.Fields[key]; !exists {
		v.Keys = append(v.Keys, key)
	}
	v.Fields[key] = value
}

// With - удобная форма Set для построения объектов цепочкой
func (v ContentValue) With(key string, value ContentValue) ContentValue {
	out := v.Clone()
	out.Set(key, value)
	return out
}

// Clone делает глубокую копию
func (v ContentValue) Clone() ContentValue {
	out := v
	switch v.Kind {
	case KindArray:
		out.Items = make([]ContentValue, len(v.Items))
		for i, item := range v.Items {
			out.Items[i] = item.Clone()
		}
	case KindObject:
		out.Keys = append([]string(nil), v.Keys...)
		out.Fields = make(map[string]ContentValue, len(v.Fields))
		for k, field := range v.Fields {
			out.Fields[k] = field.Clone()
		}
	}
	return out
}

// Equal сравнивает значения с учетом порядка элементов массивов
func (v ContentValue) Equal(other ContentValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindArray:
		if len(v.Items) != len(other.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Keys) != len(other.Keys) {
			return false
		}
		for _, k := range v.Keys {
			o, ok := other.Fields[k]
			if !ok || !v.Fields[k].Equal(o) {
				return false
			}
		}
		return true
	}
	return true
}

func splitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", apperrors.ErrInvalidPath)
	}
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidPath, path)
		}
	}
	return keys, nil
}

// Lookup ищет значение по пути вида "hero.cta.label"
func (v ContentValue) Lookup(path string) (ContentValue, bool) {
	keys, err := splitPath(path)
	if err != nil {
		return ContentValue{}, false
	}
	current := v
	for _, k := range keys {
		next, ok := current.Get(k)
		if !ok {
			return ContentValue{}, false
		}
		current = next
	}
	return current, true
}

// SetPath записывает значение по пути, создавая недостающие объекты.
// Путь через не-объект (строку, массив) - ошибка ErrInvalidPath.
func (v *ContentValue) SetPath(path string, value ContentValue) error {
	keys, err := splitPath(path)
	if err != nil {
		return err
	}
	if err := v.setPath(keys, value); err != nil {
		return fmt.Errorf("%w: %q", err, path)
	}
	return nil
}

func (v *ContentValue) setPath(keys []string, value ContentValue) error {
	if v.Kind == KindNull {
		*v = ObjectValue()
	}
	if v.Kind != KindObject {
		return apperrors.ErrInvalidPath
	}
	if len(keys) == 1 {
		v.Set(keys[0], value)
		return nil
	}
	child, _ := v.Get(keys[0])
	if err := child.setPath(keys[1:], value); err != nil {
		return err
	}
	v.Set(keys[0], child)
	return nil
}

func (v ContentValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v ContentValue) writeJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		raw, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case KindNumber:
		if v.Num == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(v.Num.String())
		}
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := v.Fields[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown content kind %d", v.Kind)
	}
	return nil
}

func (v *ContentValue) UnmarshalJSON(data []byte) error {
	parsed, err := ParseContent(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseContent разбирает JSON текст, сохраняя порядок ключей.
// Любой мусор после значения - ошибка ErrParse.
func ParseContent(raw string) (ContentValue, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	value, err := decodeContent(dec)
	if err != nil {
		return ContentValue{}, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ContentValue{}, fmt.Errorf("%w: trailing data", apperrors.ErrParse)
	}
	return value, nil
}

func decodeContent(dec *json.Decoder) (ContentValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return ContentValue{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := ArrayValue()
			for dec.More() {
				item, err := decodeContent(dec)
				if err != nil {
					return ContentValue{}, err
				}
				arr.Items = append(arr.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return ContentValue{}, err
			}
			return arr, nil
		case '{':
			obj := ObjectValue()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return ContentValue{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return ContentValue{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				field, err := decodeContent(dec)
				if err != nil {
					return ContentValue{}, err
				}
				obj.Set(key, field)
			}
			if _, err := dec.Token(); err != nil {
				return ContentValue{}, err
			}
			return obj, nil
		}
		return ContentValue{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	}
	return ContentValue{}, fmt.Errorf("unexpected token %v", tok)
}

// Value сохраняет содержимое в jsonb колонку
func (v ContentValue) Value() (driver.Value, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan читает содержимое из jsonb колонки
func (v *ContentValue) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = NullValue()
		return nil
	case []byte:
		return v.UnmarshalJSON(data)
	case string:
		return v.UnmarshalJSON([]byte(data))
	}
	return fmt.Errorf("unsupported content column type %T", src)
}
