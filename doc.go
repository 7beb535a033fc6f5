/*
Package patchmatch computes an approximate nearest-neighbor field (NNF)
between patches of an image, using the randomized propagation-and-search
algorithm described in "PatchMatch: A Randomized Correspondence Algorithm
for Structural Image Editing" (Barnes et al., SIGGRAPH 2009).

This program is free software; you can redistribute it and/or modify it under
the terms of the GNU General Public License as published by the Free Software
Foundation; either version 2 of the License, or (at your option) any later
version.

This program is distributed in the hope that it will be useful, but WITHOUT ANY
WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A
PARTICULAR PURPOSE. See the GNU General Public License for more details.

You should have received a copy of the GNU General Public License along with
this program; if not, write to the Free Software Foundation, Inc., 59 Temple
Place, Suite 330, Boston, MA 02111-1307 USA

Copyright (C) 2026 The patchmatch Authors
*/

// For every patch centered on a pixel of a target region, [Driver.Compute]
// finds a patch centered on a pixel of a source region that minimizes a
// [PatchDistance], propagating good matches to scanline neighbors and
// refining them with an exponentially shrinking random search.
package patchmatch
