package anm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCurveFormat = errors.New("unknown curve format")
	ErrUnknownEntryKind   = errors.New("unknown entry kind")
	ErrMalformedClip      = errors.New("malformed clip")
)

func errorUnknownFormat(format uint16) error {
	return errors.Wrapf(ErrUnknownCurveFormat, "format 0x%.2x", format)
}

func errorShapeMismatch(format uint16, c Curve) error {
	return errors.Wrapf(ErrMalformedClip, "curve %T does not fit format 0x%.2x", c, format)
}

func errorCurveTooLong(length int) error {
	return errors.Wrapf(ErrMalformedClip, "curve has %d elements, limit is %d", length, 0xffff)
}

func errorAt(err error, pos int64, format string, a ...interface{}) error {
	return errors.Wrapf(err, "%s at 0x%x", fmt.Sprintf(format, a...), pos)
}
