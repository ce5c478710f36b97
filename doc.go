// Package hull computes boat hull surfaces from a handful of rail curves and
// unrolls them into flat panels that can be cut from sheet material.
//
// # Curves
//
// All curves in this package are addressed by arc length. [NormalizedCurve]
// wraps an arbitrary parametric curve in a lookup table whose entries are
// relaxed toward uniform arc-length spacing, so that the parameter u ∈ [0, 1]
// accepted by [NormalizedCurve.Get] is the fraction of the curve's length. The
// table also drives searches along the curve ([NormalizedCurve.FindDimmDist],
// [NormalizedCurve.FindPlaneIntersection]) and area integration
// ([NormalizedCurve.FindArea]).
//
// [RationalBezier] is a Bezier curve of arbitrary degree with weighted control
// points. [RationalBezier.FindSegments] splits it into stretches of roughly
// constant curvature, each approximated by a line or a circular arc
// ([Segment]). The approximations are what ends up being cut.
//
// Curves are generic over the point type, so that the same code serves the 2D
// ([Point2]) and the 3D ([Point3]) case. Points carry a homogeneous weight,
// which is used by rational curves and ignored by distances and angles.
//
// # Surfaces
//
// [Surface] lofts a surface through two or more rails. Its cross-sections
// are rational Bezier curves through the rails' points at a common u. Where
// consecutive cross-sections need different numbers of segments, seams
// ([DivisionCurve]) run along the surface, splitting it into panels. Cutting
// planes yield bulkhead outlines ([Bulkhead]), and [Surface.VolumeUnder]
// measures displacement.
//
// # Flattening
//
// [Surface.Flatten] unrolls the surface strip by strip, placing every point by
// trilateration from two already placed neighbors so that distances on the
// surface are kept. Panels are split at the seams into a tree of
// [FlattenNode] values, and adjoining panels interlock with puzzle teeth
// ([PuzzleTeeth]).
//
// # Configuration and logging
//
// Tuning parameters are collected in [Params]. The package is silent by
// default; [SetLogger] installs a logrus logger for diagnostics.
package hull
