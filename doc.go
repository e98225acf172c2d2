// Package lcicore partitions a life-cycle inventory (LCI) technosphere
// graph into a background (the strongly-connected core plus its transitive
// dependencies) and a foreground (the acyclic processes upstream of it),
// and computes inventory and impact results over that partition.
//
// 🚀 What is lcicore?
//
//	A deterministic, single-threaded traversal engine that brings together:
//
//	  • Tarjan-based discovery of product flows and their strongly
//	    connected components (package sccindex)
//	  • Assembly of sparse technosphere/biosphere matrices A*, B* from the
//	    discovered entries (packages pflow, entry, sparsemat, background)
//	  • Per-query foreground fragment extraction and impact assessment
//	    (packages fragment, characterize)
//
// ✨ Design goals
//
//   - Deterministic    — discovery order alone decides PF indices, SCC ids
//     and matrix columns; two runs over the same archive agree exactly
//   - Explicit          — no global mutable state; a BackgroundManager owns
//     every ProductFlow, Emission and matrix entry it creates
//   - Iterative         — the Tarjan walk and the LCI solver both run on an
//     explicit heap stack, not native recursion, so they survive archives
//     with tens of thousands of processes
//
// Under the hood, the domain packages sit on top of the vendored graph
// substrate:
//
//	core/, bfs/, dfs/, matrix/  — graph primitives and sparse matrix views
//	                              inherited from the graph toolkit this
//	                              module was built from, repurposed to back
//	                              the SCC index and sparse A*/B* storage
//	archive/, classify/,
//	characterize/               — the inbound contracts: process archive,
//	                              compartment classifier, characterization
//	                              database
//	pflow/, entry/               — product-flow / emission identities and
//	                              pending matrix entries
//	resolve/                    — exchange termination resolution
//	sccindex/                   — Tarjan stack, component graph, background
//	                              selection
//	background/                  — traversal driver, A*/B* assembly, the
//	                              iterative LCI solver
//	fragment/                   — per-query Af/Ad/Bf extraction and impact
//	                              assessment
//	internal/config/,
//	internal/logging/           — viper-backed settings and a zap-backed
//	                              logger, used by cmd/lcicore
//	cmd/lcicore/                 — a cobra CLI: partition (traversal summary)
//	                              and fragment (per-query characterization)
//
// go get github.com/lcafoundry/lcicore
package lcicore
