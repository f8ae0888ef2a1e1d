// Package cosmic computes analytic cosmic variance estimates following the
// recipe in "A Cosmic Variance Cookbook" (Moster et al. 2011, section 3.4).
//
// Cosmic variance is the field-to-field scatter in observed galaxy number
// density caused by large-scale structure, distinct from Poisson shot noise.
// The estimate combines a survey-dependent dark matter variance fit (Table 3)
// with a stellar-mass-dependent galaxy bias fit (Table 4):
//
//	sigma_dm = sigma_a / (meanZ^beta + sigma_b)
//	b        = b0 * (meanZ + 1)^b1 + b2
//	delta_gg = b * sigma_dm * sqrt(0.2 / deltaZ)
//
// The bias table is keyed by discrete stellar mass bins; callers should round
// log stellar masses to the nearest 0.25 or 0.75 (Bucket does this), and
// masses off the grid are snapped to the nearest tabulated center with a
// logged warning. Interpolation between bins is not implemented.
//
// All tables are fixed at init and every operation is a pure function, so the
// package is safe for concurrent use.
package cosmic
