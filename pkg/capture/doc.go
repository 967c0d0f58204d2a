// Package capture computes synthetic capture timestamps for scanned
// frames and reads embedded capture timestamps back out of images.
//
// EZController doesn't guarantee that frames are saved in sequential
// order, so each frame gets the first frame's modification time plus
// a millisecond per position. The millisecond spacing keeps programs
// that sort by capture time (such as Lightroom) in scan order even
// when frame names alone would sort wrong.
package capture
