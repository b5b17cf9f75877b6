// Package acoustics simulates sound energy as a swarm of independent particles.
//
// Particles are emitted from a point source, advance one unit of time per tick,
// reflect off the faces of an environment.Environment, are pushed away from its
// naked edges, stay inside its bounding box, and fade out through linear decay,
// reflection losses and a bounce cap. Receivers are vertical cylinders that
// count the particles passing through them on every tick.
package acoustics
