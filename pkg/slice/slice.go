// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package slice

import (
	"fmt"
	"sort"
)

// DuplicatedString returns the first string that appears more than once, or
// the empty string when all elements are distinct.
func DuplicatedString(sl []string) string {
	seen := map[string]struct{}{}
	for _, s := range sl {
		if _, ok := seen[s]; ok {
			return s
		}
		seen[s] = struct{}{}
	}
	return ""
}

// StringsNotIn returns the elements of sl that are absent from set, in the
// order they appear in sl.
func StringsNotIn(sl, set []string) []string {
	m := map[string]struct{}{}
	for _, s := range set {
		m[s] = struct{}{}
	}
	var res []string
	for _, s := range sl {
		if _, ok := m[s]; !ok {
			res = append(res, s)
		}
	}
	return res
}

// StringSliceContains reports whether sl contains s.
func StringSliceContains(sl []string, s string) bool {
	for _, v := range sl {
		if v == s {
			return true
		}
	}
	return false
}

// SortedIntersect returns the strings present in both slices, sorted
// lexicographically.
func SortedIntersect(sl1, sl2 []string) []string {
	m := map[string]struct{}{}
	for _, s := range sl1 {
		m[s] = struct{}{}
	}
	var res []string
	for _, s := range sl2 {
		if _, ok := m[s]; ok {
			res = append(res, s)
			delete(m, s)
		}
	}
	sort.Strings(res)
	return res
}

// KeyIndices maps each key to its index within columns, erroring on the
// first key that is not a column.
func KeyIndices(columns, keys []string) ([]int, error) {
	res := make([]int, 0, len(keys))
	for _, k := range keys {
		found := false
		for i, c := range columns {
			if c == k {
				res = append(res, i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("column %q not found", k)
		}
	}
	return res, nil
}
