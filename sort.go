package sortjson

import "sort"

// Sort returns a copy of v with object keys reordered from sortFrom mapping
// levels below the document root. A sortFrom of 0 sorts the root object
// itself; 1 keeps the root's key order and sorts everything nested one
// mapping level down. Arrays do not consume a depth level and their element
// order is always preserved, though their elements are still processed.
//
// Keys compare by ordinal (byte-wise) order, never locale collation, so
// output is identical across environments. A non-empty sortOrder pins the
// listed keys to the front of the depth-0 object in their declared order;
// it has no effect at any other depth.
//
// Sort never mutates its input and the result shares no containers with it.
// sortFrom must not be negative; callers clamp or reject negative values.
func Sort(v Value, sortFrom int, sortOrder []string) Value {
	return sortValue(v, 0, sortFrom, sortOrder)
}

func sortValue(v Value, depth, sortFrom int, sortOrder []string) Value {
	switch t := v.(type) {
	case Object:
		members := make(Object, len(t))
		for i, m := range t {
			members[i] = Member{Key: m.Key, Value: sortValue(m.Value, depth+1, sortFrom, sortOrder)}
		}
		if depth >= sortFrom {
			less := ordinalLess
			if depth == 0 && len(sortOrder) > 0 {
				less = customOrderLess(sortOrder)
			}
			sort.SliceStable(members, func(i, j int) bool {
				return less(members[i].Key, members[j].Key)
			})
		}
		return members
	case Array:
		elements := make(Array, len(t))
		for i, e := range t {
			elements[i] = sortValue(e, depth, sortFrom, sortOrder)
		}
		return elements
	default:
		// Null, Bool, Number and String are immutable value types.
		return v
	}
}

func ordinalLess(a, b string) bool {
	return a < b
}

// customOrderLess ranks keys listed in order ahead of all others: listed
// keys sort by their position in order, unlisted keys follow in ordinal
// order. Duplicate entries in order keep their first position.
func customOrderLess(order []string) func(a, b string) bool {
	rank := make(map[string]int, len(order))
	for i, key := range order {
		if _, ok := rank[key]; !ok {
			rank[key] = i
		}
	}
	return func(a, b string) bool {
		rankA, listedA := rank[a]
		rankB, listedB := rank[b]
		switch {
		case listedA && listedB:
			return rankA < rankB
		case listedA:
			return true
		case listedB:
			return false
		default:
			return a < b
		}
	}
}
