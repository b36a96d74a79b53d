// Package dag provides a small directed acyclic graph keyed by string IDs.
//
// An edge from -> to records that "to" depends on "from": "from" must be
// handled first. The graph offers cycle detection, reachability queries used
// to refuse cycle-closing edges up front, and a stable topological ordering
// in which independent nodes keep the order the caller supplied.
package dag
