// Package bestfirst provides a generic informed-search engine.
//
// A caller describes a domain as a Problem (initial state, legal actions,
// transition function, goal test and step cost) over a State type that can
// be compared, ordered and fingerprinted. BestFirstGraphSearch then finds a
// least-cost path to a goal, popping the frontier by a caller-supplied
// evaluation function. AStar, UniformCost and GreedyBestFirst wrap the
// common evaluation functions.
//
// It exposes two main entry points:
//
//   - BestFirstGraphSearch: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The search is a graph search: a table of the cheapest known cost per state
// fingerprint discards children that are dominated by an equal-or-cheaper
// path. It is optimal when step costs are non-negative and the evaluation
// function is built from a consistent heuristic. Negative step costs are not
// supported.
//
// ShortestPath is a convenience API for plain weighted graphs described by
// Graph and Neighbor. It runs A* through the same engine.
package bestfirst
