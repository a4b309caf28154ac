package cmdparser

import (
	"encoding/json"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Container is the base interface container structures implement.
type Container interface {
	Empty() bool
	Size() int
	Clear()
}

// StringCommandNodeMap holds CommandNode children keyed by name, backed by
// a hash table plus a doubly-linked list for deterministic key ordering.
// The node tree uses one of these per node to store its children (after
// every AddChild, the map is rebuilt in sorted order so iteration always
// yields literals before arguments, then sortedKey order within a kind).
type StringCommandNodeMap interface {
	Put(key string, value CommandNode)
	Get(key string) (value CommandNode, found bool)
	Remove(key string)
	Keys() []string
	Values() []CommandNode
	Range(f func(key string, value CommandNode) bool)
	Container
}

// CommandNodeStringMap holds string values keyed by CommandNode, used for
// Dispatcher.SmartUsage's per-child usage rendering.
type CommandNodeStringMap interface {
	Put(key CommandNode, value string)
	Get(key CommandNode) (value string, found bool)
	Remove(key CommandNode)
	Keys() []CommandNode
	Values() []string
	Range(f func(key CommandNode, value string) bool)
	Container
}

// NewStringCommandNodeMap returns a new StringCommandNodeMap.
func NewStringCommandNodeMap() StringCommandNodeMap {
	return &stringCommandNodeMap{linkedhashmap.New()}
}

// NewCommandNodeStringMap returns a new CommandNodeStringMap.
func NewCommandNodeStringMap() CommandNodeStringMap {
	return &commandNodeStringMap{linkedhashmap.New()}
}

type stringCommandNodeMap struct{ *linkedhashmap.Map }

func (m *stringCommandNodeMap) MarshalJSON() ([]byte, error)    { return m.Map.ToJSON() }
func (m *stringCommandNodeMap) UnmarshalJSON(data []byte) error { return m.Map.FromJSON(data) }

var (
	_ StringCommandNodeMap = (*stringCommandNodeMap)(nil)
	_ json.Marshaler       = (*stringCommandNodeMap)(nil)
	_ json.Unmarshaler     = (*stringCommandNodeMap)(nil)
)

func (m *stringCommandNodeMap) Put(key string, value CommandNode) { m.Map.Put(key, value) }
func (m *stringCommandNodeMap) Get(key string) (CommandNode, bool) {
	v, found := m.Map.Get(key)
	if !found {
		return nil, false
	}
	return v.(CommandNode), true
}
func (m *stringCommandNodeMap) Remove(key string) { m.Map.Remove(key) }
func (m *stringCommandNodeMap) Keys() []string {
	keys := m.Map.Keys()
	a := make([]string, len(keys))
	for i, k := range keys {
		a[i] = k.(string)
	}
	return a
}
func (m *stringCommandNodeMap) Values() []CommandNode {
	values := m.Map.Values()
	a := make([]CommandNode, len(values))
	for i, v := range values {
		a[i] = v.(CommandNode)
	}
	return a
}
func (m *stringCommandNodeMap) Range(f func(key string, value CommandNode) bool) {
	m.Map.All(func(key interface{}, value interface{}) bool {
		return f(key.(string), value.(CommandNode))
	})
}

type commandNodeStringMap struct{ *linkedhashmap.Map }

func (m *commandNodeStringMap) MarshalJSON() ([]byte, error)    { return m.Map.ToJSON() }
func (m *commandNodeStringMap) UnmarshalJSON(data []byte) error { return m.Map.FromJSON(data) }

var (
	_ CommandNodeStringMap = (*commandNodeStringMap)(nil)
	_ json.Marshaler       = (*commandNodeStringMap)(nil)
	_ json.Unmarshaler     = (*commandNodeStringMap)(nil)
)

func (m *commandNodeStringMap) Put(key CommandNode, value string) { m.Map.Put(key, value) }
func (m *commandNodeStringMap) Get(key CommandNode) (string, bool) {
	v, found := m.Map.Get(key)
	if !found {
		return "", false
	}
	return v.(string), true
}
func (m *commandNodeStringMap) Remove(key CommandNode) { m.Map.Remove(key) }
func (m *commandNodeStringMap) Keys() []CommandNode {
	keys := m.Map.Keys()
	a := make([]CommandNode, len(keys))
	for i, k := range keys {
		a[i] = k.(CommandNode)
	}
	return a
}
func (m *commandNodeStringMap) Values() []string {
	values := m.Map.Values()
	a := make([]string, len(values))
	for i, v := range values {
		a[i] = v.(string)
	}
	return a
}
func (m *commandNodeStringMap) Range(f func(key CommandNode, value string) bool) {
	m.Map.All(func(key interface{}, value interface{}) bool {
		return f(key.(CommandNode), value.(string))
	})
}
