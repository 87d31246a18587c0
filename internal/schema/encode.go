package schema

import (
	"github.com/mcncl/jsonkit/internal/models"
)

// ToValue renders the node as a JSON Schema object. Keys are emitted in the
// order type, format, properties, required, items, oneOf.
func (n *Node) ToValue() models.Value {
	b := models.NewObjectBuilder(4)
	n.appendTo(b)
	return b.Build()
}

func (n *Node) appendTo(b *models.ObjectBuilder) {
	if n.Type != TypeAny {
		b.Set("type", models.StringValue(string(n.Type)))
	}
	if n.Format != FormatNone {
		b.Set("format", models.StringValue(string(n.Format)))
	}
	if n.Type == TypeObject {
		props := models.NewObjectBuilder(len(n.Properties))
		for _, p := range n.Properties {
			props.Set(p.Name, p.Schema.ToValue())
		}
		b.Set("properties", props.Build())

		required := make([]models.Value, len(n.Required))
		for i, r := range n.Required {
			required[i] = models.StringValue(r)
		}
		b.Set("required", models.ArrayValue(required...))
	}
	if n.Items != nil {
		b.Set("items", n.Items.ToValue())
	}
	if len(n.OneOf) > 0 {
		variants := make([]models.Value, len(n.OneOf))
		for i, v := range n.OneOf {
			variants[i] = v.ToValue()
		}
		b.Set("oneOf", models.ArrayValue(variants...))
	}
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.ToValue().MarshalJSON()
}

// ToValue renders the document with its "$schema" key first.
func (d *Document) ToValue() models.Value {
	b := models.NewObjectBuilder(5)
	if d.Dialect != "" {
		b.Set("$schema", models.StringValue(d.Dialect))
	}
	if d.Root != nil {
		d.Root.appendTo(b)
	}
	return b.Build()
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.ToValue().MarshalJSON()
}
