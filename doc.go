/*
 * doc.go, part of goChem.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

/*
Package faunus is the root package of the move framework: it holds the
shared data model (Particle, Group, Change, ParticleTracker, Space) and
the two collaborator interfaces every move is built against, Hamiltonian
and Geometry. Concrete moves live in the move subpackage; this package
only owns the state they all read and mutate.

Particles live in two parallel slices on a Space, Committed and Trial. A
move mutates Trial only, describes what it touched in a Change, asks the
Hamiltonian for the resulting energy change, and either commits (copies
Trial into Committed) or rejects (copies Committed back into Trial).
*/
package faunus
