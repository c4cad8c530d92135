package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"ridemedia-backend/internal/models"
)

type seedFile struct {
	Blocks []seedBlock `yaml:"blocks"`
}

type seedBlock struct {
	ID        string    `yaml:"id"`
	Page      string    `yaml:"page"`
	SectionID string    `yaml:"section_id"`
	Order     int       `yaml:"order"`
	IsActive  *bool     `yaml:"is_active"`
	Content   yaml.Node `yaml:"content"`
}

// ParseSeed читает YAML файл начального контента. Порядок ключей content сохраняется.
func ParseSeed(data []byte) ([]models.ContentBlock, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла контента: %w", err)
	}

	blocks := make([]models.ContentBlock, 0, len(file.Blocks))
	for i, b := range file.Blocks {
		content, err := contentFromYAML(&b.Content)
		if err != nil {
			return nil, fmt.Errorf("блок %d (%s): %w", i, b.ID, err)
		}
		active := true
		if b.IsActive != nil {
			active = *b.IsActive
		}
		sectionID := b.SectionID
		if sectionID == "" {
			sectionID = b.ID
		}
		blocks = append(blocks, models.ContentBlock{
			ID:        b.ID,
			Page:      b.Page,
			SectionID: sectionID,
			Content:   content,
			Order:     b.Order,
			IsActive:  active,
		})
	}
	return blocks, nil
}

func contentFromYAML(node *yaml.Node) (models.ContentValue, error) {
	switch node.Kind {
	case 0:
		return models.NullValue(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return models.NullValue(), nil
		}
		return contentFromYAML(node.Content[0])
	case yaml.AliasNode:
		return contentFromYAML(node.Alias)
	case yaml.MappingNode:
		obj := models.ObjectValue()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := contentFromYAML(node.Content[i+1])
			if err != nil {
				return models.ContentValue{}, err
			}
			obj.Set(node.Content[i].Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := models.ArrayValue()
		for _, item := range node.Content {
			value, err := contentFromYAML(item)
			if err != nil {
				return models.ContentValue{}, err
			}
			arr.Items = append(arr.Items, value)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return models.ContentValue{}, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
}

func scalarFromYAML(node *yaml.Node) (models.ContentValue, error) {
	switch node.ShortTag() {
	case "!!null":
		return models.NullValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return models.ContentValue{}, err
		}
		return models.BoolValue(b), nil
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			return models.NumberValue(json.Number(node.Value)), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return models.ContentValue{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return models.ContentValue{}, fmt.Errorf("number %q at line %d is not representable in JSON", node.Value, node.Line)
		}
		return models.NumberValue(json.Number(strconv.FormatFloat(f, 'f', -1, 64))), nil
	}
	return models.StringValue(node.Value), nil
}
