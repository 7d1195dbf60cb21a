// SPDX-License-Identifier: Apache-2.0

// Package samplableset implements a dynamic weighted sampling set: a
// container of distinct elements, each with a positive weight, that supports
// insertion, weight update, removal, membership and weight queries, and
// weighted random sampling (with or without replacement), all in expected
// O(log log(wMax/wMin)) time per operation independent of the number of
// elements.
//
// The algorithmic core is a composition-and-rejection sampler: elements are
// binned into O(log(wMax/wMin)) logarithmically-spaced weight groups, group
// totals are tracked in a complete binary propagation tree, and sampling
// proceeds by descending the tree to a group proportional to its weight,
// picking uniformly within the group's bin, and accepting with probability
// weight/groupCeiling — retrying on rejection. See bin_index.go,
// element_table.go, group_bins.go, and propagation_tree.go for the four
// cooperating components, and samplableset.go for the façade that
// orchestrates them.
package samplableset
