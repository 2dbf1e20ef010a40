package kv

import "encoding/json"

// ReadJSON decodes the value stored under key into dest.
//
// A missing key or malformed stored value reports false and leaves dest at
// its zero value — stored state is never trusted to be well-formed, and a
// corrupt value degrades to the empty default instead of an error.
func ReadJSON(store Store, key string, dest interface{}) bool {
	data, err := store.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

// WriteJSON encodes value and replaces the whole entry under key.
func WriteJSON(store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Write(key, data)
}
