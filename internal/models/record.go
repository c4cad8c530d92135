package models

// Field - пара ключ/значение одной колонки экспорта
type Field struct {
	Key   string
	Value string
}

// Record - упорядоченная строка для CSV экспорта
type Record []Field

// Add пропускает пустые необязательные значения, как omitempty в JSON
func (r Record) Add(key, value string, optional bool) Record {
	if optional && value == "" {
		return r
	}
	return append(r, Field{Key: key, Value: value})
}

// Get возвращает значение по ключу
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
