package mcp

import (
	"productboard-mcp/internal/normalize"
	"productboard-mcp/internal/productboard"
)

func (s *Server) catalog() map[string]operation {
	groups := [][]operation{
		s.productOps(),
		s.featureOps(),
		s.noteOps(),
		s.releaseOps(),
		s.objectiveOps(),
		s.initiativeOps(),
		s.keyResultOps(),
		s.directoryOps(),
	}
	ops := make(map[string]operation)
	for _, group := range groups {
		for _, op := range group {
			ops[op.tool.Name] = op
		}
	}
	return ops
}

func requireString(args map[string]any, key string) (string, error) {
	v, ok := normalize.String(args[key])
	if !ok {
		return "", normalize.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// listOptions assembles the normalized listing inputs: the clamped limit and
// the flattened free-form filter, with explicit convenience filters merged on
// top (convenience wins on key collisions).
func listOptions(args map[string]any, convenience map[string]string) productboard.ListOptions {
	query := map[string]string{}
	if filter, ok := normalize.Object(args["filter"]); ok {
		for key, value := range normalize.Flatten(filter) {
			query[key] = value
		}
	}
	for key, value := range convenience {
		if value != "" {
			query[key] = value
		}
	}
	return productboard.ListOptions{
		Limit: productboard.Limit(args["limit"]),
		Query: query,
	}
}

// statusQuery maps a normalized status onto listing query keys.
func statusQuery(args map[string]any, query map[string]string) error {
	status, err := normalize.Status(args)
	if err != nil {
		return err
	}
	if id, ok := normalize.String(status["id"]); ok {
		query["status.id"] = id
	}
	if name, ok := normalize.String(status["name"]); ok {
		query["status.name"] = name
	}
	return nil
}

// parentQuery maps a normalized parent onto listing query keys. A feature
// parent filters on the immediate parent ("parent.id").
func parentQuery(args map[string]any, query map[string]string) error {
	parent, err := normalize.Parent(args)
	if err != nil {
		return err
	}
	for kind, v := range parent {
		obj, ok := normalize.Object(v)
		if !ok {
			continue
		}
		id, _ := normalize.String(obj["id"])
		switch kind {
		case "feature":
			query["parent.id"] = id
		default:
			query[kind+".id"] = id
		}
	}
	return nil
}

// setOwnerUpdate records the owner field with presence semantics: a non-empty
// string sets the owner, an explicit empty string or null clears it, and any
// other value is a validation error so a mutating call never proceeds on a
// mistyped argument.
func setOwnerUpdate(update *normalize.Update, raw any) error {
	switch email := raw.(type) {
	case string:
		if email != "" {
			update.Set("owner", map[string]any{"email": email})
		} else {
			update.Set("owner", nil)
		}
	case nil:
		update.Set("owner", nil)
	default:
		return normalize.Errorf("invalid owner_email: expected a string")
	}
	return nil
}

// anyKeyPresent reports whether args carries at least one of the keys.
func anyKeyPresent(args map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := args[key]; ok {
			return true
		}
	}
	return false
}
