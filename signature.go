package stockroom

import (
	"hash/fnv"
	"sort"
)

// signature is the sorted, de-duplicated set of component TypeIDs that
// identifies an archetype. The index guarantees at most one archetype per
// signature.
type signature []TypeID

// normalizeComponents sorts components by TypeID and drops duplicates,
// returning the normalized component slice alongside its signature. The
// input slice is not modified.
func normalizeComponents(components []Component) ([]Component, signature) {
	sorted := make([]Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TypeID() < sorted[j].TypeID()
	})

	deduped := sorted[:0]
	var prev TypeID
	for i, c := range sorted {
		if i > 0 && c.TypeID() == prev {
			continue
		}
		deduped = append(deduped, c)
		prev = c.TypeID()
	}

	sig := make(signature, len(deduped))
	for i, c := range deduped {
		sig[i] = c.TypeID()
	}
	return deduped, sig
}

func (s signature) contains(id TypeID) bool {
	_, ok := s.indexOf(id)
	return ok
}

// indexOf binary-searches the sorted signature for a TypeID.
func (s signature) indexOf(id TypeID) (int, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	if i < len(s) && s[i] == id {
		return i, true
	}
	return 0, false
}

func (s signature) hash() uint64 {
	return hashTypeIDs(s)
}

// hashTypeIDs hashes a sorted TypeID slice. Used both for signature identity
// and as the query-result cache key.
func hashTypeIDs(ids []TypeID) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, id := range ids {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// hashComponentSet normalizes an arbitrary component list and hashes the
// resulting signature.
func hashComponentSet(components []Component) uint64 {
	_, sig := normalizeComponents(components)
	return sig.hash()
}
