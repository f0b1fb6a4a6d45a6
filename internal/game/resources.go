package game

import (
	"sort"

	"github.com/louisbranch/evermeadow/internal/errors"
)

// ResourceMap counts resources by type. Zero entries are pruned on
// mutation so serialized forms stay minimal.
type ResourceMap map[ResourceType]int

// Clone returns a copy of the map.
func (rm ResourceMap) Clone() ResourceMap {
	if rm == nil {
		return nil
	}
	out := make(ResourceMap, len(rm))
	for k, v := range rm {
		out[k] = v
	}
	return out
}

// Count returns the total number of resources across all types.
func (rm ResourceMap) Count() int {
	total := 0
	for _, v := range rm {
		total += v
	}
	return total
}

// CountExcludingVP totals the spendable resources, ignoring point tokens.
func (rm ResourceMap) CountExcludingVP() int {
	total := 0
	for k, v := range rm {
		if k == ResourceTypeVP {
			continue
		}
		total += v
	}
	return total
}

// Add merges other into rm.
func (rm ResourceMap) Add(other ResourceMap) {
	for k, v := range other {
		if v == 0 {
			continue
		}
		rm[k] += v
	}
}

// Subtract removes other from rm, failing if any type would go negative.
func (rm ResourceMap) Subtract(other ResourceMap) error {
	for k, v := range other {
		if rm[k] < v {
			return errors.WithMetadata(errors.CodeInsufficientResources,
				"can't spend more than you have",
				map[string]string{
					"resource": string(k),
				})
		}
	}
	for k, v := range other {
		rm[k] -= v
		if rm[k] == 0 {
			delete(rm, k)
		}
	}
	return nil
}

// Types returns the resource types present, in stable order.
func (rm ResourceMap) Types() []ResourceType {
	out := make([]ResourceType, 0, len(rm))
	for k, v := range rm {
		if v > 0 {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
