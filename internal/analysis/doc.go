// Package analysis provides frequency analysis of temperature trajectories.
//
//   - [FFT]: radix-2 fast Fourier transform of a real signal
//   - [PowerSpectrum]: spectral magnitudes below the Nyquist rate
//   - [Detrend]: mean removal ahead of spectral analysis
//   - [DominantPeriod]: strongest period in a uniformly sampled trajectory
//
// DominantPeriod is used to confirm that the response to a periodic load
// oscillates at the forcing period once transients have decayed.
package analysis
