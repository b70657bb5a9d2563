// Package conv provides the convolution kernels behind the reverb.
//
// [Partitioned] is a uniformly partitioned overlap-save convolver for long
// impulse responses. It accepts host blocks of any length, runs one FFT
// per partition boundary and reports a fixed latency equal to its
// partition size. [Direct] is the O(N*M) reference used to check it.
package conv
