// Package yamlconv converts YAML documents into jsonkit Value trees.
// Mapping keys keep their document order, numbers classify the way the
// JSON parser classifies them, and anchors/aliases are resolved. It is
// a convenience for fixtures and configuration files carried by
// protocol tooling; the wire format itself stays JSON.
package yamlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonkit"
)

// maxAliasDepth bounds alias/anchor recursion.
const maxAliasDepth = 1000

// Decode converts the first YAML document in data.
func Decode(data []byte) (*jsonkit.Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Kind == 0 {
		return jsonkit.Null, nil
	}
	return fromNode(&n, 0)
}

// DecodeAll converts every YAML document in data, in order.
func DecodeAll(data []byte) ([]*jsonkit.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*jsonkit.Value
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		v, err := fromNode(&n, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func fromNode(n *yaml.Node, depth int) (*jsonkit.Value, error) {
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("yamlconv: node nesting too deep")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonkit.Null, nil
		}
		return fromNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.MappingNode:
		m := jsonkit.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yamlconv: non-scalar mapping key at line %d", k.Line)
			}
			v, err := fromNode(vn, depth+1)
			if err != nil {
				return nil, err
			}
			m.Put(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		a := jsonkit.NewArray()
		for _, item := range n.Content {
			v, err := fromNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			a.Add(v)
		}
		return a, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("yamlconv: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func fromScalar(n *yaml.Node) (*jsonkit.Value, error) {
	switch n.Tag {
	case "!!null":
		return jsonkit.Null, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return jsonkit.OfString(n.Value), nil
		}
		return jsonkit.OfBool(b), nil
	case "!!int":
		// base 0 admits the 0x/0o forms YAML resolves as integers
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return jsonkit.OfInt32(int32(i)), nil
			}
			return jsonkit.OfInt64(i), nil
		}
		if bi, ok := new(big.Int).SetString(n.Value, 0); ok {
			return jsonkit.OfBigInt(bi), nil
		}
		return nil, fmt.Errorf("yamlconv: bad integer %q at line %d", n.Value, n.Line)
	case "!!float":
		low := strings.ToLower(n.Value)
		if strings.HasSuffix(low, ".inf") || low == ".nan" {
			return nil, fmt.Errorf("yamlconv: %q has no JSON representation (line %d)", n.Value, n.Line)
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("yamlconv: bad float %q at line %d", n.Value, n.Line)
		}
		return jsonkit.OfFloat64(f), nil
	default:
		// !!str, !!timestamp, !!binary, and custom tags stay textual
		return jsonkit.OfString(n.Value), nil
	}
}
