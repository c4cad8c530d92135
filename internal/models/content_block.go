package models

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"ridemedia-backend/internal/apperrors"
)

type ContentBlock struct {
	ID        string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Page      string       `json:"page" gorm:"not null;type:varchar(64);index"`
	SectionID string       `json:"section_id" gorm:"not null;type:varchar(128)"`
	Content   ContentValue `json:"content" gorm:"type:jsonb;not null"`
	Order     int          `json:"order" gorm:"column:sort_order;default:0"`
	IsActive  bool         `json:"is_active" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime;type:timestamp with time zone"`
}

// FieldEditor - вид редактора для поля блока
type FieldEditor string

const (
	EditorLine   FieldEditor = "line"   // строка короче 100 символов
	EditorText   FieldEditor = "text"   // многострочный текст
	EditorArray  FieldEditor = "array"  // массив правится как JSON текст
	EditorObject FieldEditor = "object" // вложенный объект, правится по ключам
	EditorNumber FieldEditor = "number"
	EditorBool   FieldEditor = "bool"
	EditorNone   FieldEditor = "none"
)

const multilineThreshold = 100

func EditorFor(v ContentValue) FieldEditor {
	switch v.Kind {
	case KindString:
		if utf8.RuneCountInString(v.Str) >= multilineThreshold {
			return EditorText
		}
		return EditorLine
	case KindArray:
		return EditorArray
	case KindObject:
		return EditorObject
	case KindNumber:
		return EditorNumber
	case KindBool:
		return EditorBool
	}
	return EditorNone
}

type FieldDescriptor struct {
	Path   string      `json:"path"`
	Editor FieldEditor `json:"editor"`
}

// FieldDescriptors обходит объект и перечисляет поля в порядке ключей, вложенные объекты рекурсивно
func (v ContentValue) FieldDescriptors() []FieldDescriptor {
	var out []FieldDescriptor
	v.collectFields("", &out)
	return out
}

func (v ContentValue) collectFields(prefix string, out *[]FieldDescriptor) {
	if v.Kind != KindObject {
		return
	}
	for _, k := range v.Keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		field := v.Fields[k]
		*out = append(*out, FieldDescriptor{Path: path, Editor: EditorFor(field)})
		if field.Kind == KindObject {
			field.collectFields(path, out)
		}
	}
}

// ContentDraft накапливает правки полей до сохранения блока целиком
type ContentDraft struct {
	content ContentValue
}

func NewContentDraft(content ContentValue) *ContentDraft {
	return &ContentDraft{content: content.Clone()}
}

func (d *ContentDraft) Content() ContentValue {
	return d.content.Clone()
}

// EditField применяет текст из редактора к полю по пути. Тип поля определяет
// разбор: строки пишутся как есть, массив должен разобраться в массив.
// При ошибке черновик не меняется.
func (d *ContentDraft) EditField(path, raw string) error {
	current, ok := d.content.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %q not found", apperrors.ErrInvalidPath, path)
	}

	var next ContentValue
	switch EditorFor(current) {
	case EditorLine, EditorText:
		next = StringValue(raw)
	case EditorArray:
		parsed, err := ParseContent(raw)
		if err != nil {
			return err
		}
		if parsed.Kind != KindArray {
			return fmt.Errorf("%w: %q expects an array", apperrors.ErrParse, path)
		}
		next = parsed
	case EditorNumber:
		parsed, err := ParseContent(raw)
		if err != nil || parsed.Kind != KindNumber {
			return fmt.Errorf("%w: %q expects a number", apperrors.ErrParse, path)
		}
		next = parsed
	case EditorBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %q expects true or false", apperrors.ErrParse, path)
		}
		next = BoolValue(b)
	default:
		return fmt.Errorf("%w: %q is not directly editable", apperrors.ErrInvalidPath, path)
	}

	return d.content.SetPath(path, next)
}
