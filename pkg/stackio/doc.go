// Package stackio reads, writes, and replays stack placement files.
//
// # Overview
//
// A placement file records where a build run left every stacked object,
// keyed by stack group. It is the exchange format between runs: a build can
// export placements, and a later replay can apply them to a fresh copy of
// the same scene without re-running the solver.
//
// # XML Format
//
// Placements are XML with one element level per concept:
//
//	<stacks>
//	  <stack name="stack001">
//	    <object name="stack001_base" tx="0" ty="0" tz="0"/>
//	    <object name="stack001_mid1" tx="0" ty="1" tz="0"/>
//	    <object name="stack001_top" tx="0" ty="3" tz="0"/>
//	  </stack>
//	</stacks>
//
// Attribute order does not matter. Every stack and object carries a name;
// tx, ty, and tz hold the object's world translation.
//
// # Import and Export
//
// Use [ReadFile] to read a placement file from a path, or [Read] to read
// from any io.Reader. Both validate names and numeric attributes and return
// INVALID_FORMAT errors for malformed input. [WriteFile] and [Write] are the
// inverse; [FromScene] captures the placements of built stacks from a scene
// document.
//
// # Replay
//
// [Replay] applies a placement file to a scene host with absolute moves, in
// document order. It never stacks or solves: objects end up exactly where
// the file says, whatever the scene looked like before.
//
// # Reports
//
// [WriteReport] encodes a build result as JSON for machine consumption,
// mirroring the placement export but without geometry.
package stackio
