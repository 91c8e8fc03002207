// Package errs holds the generic validation and lookup errors shared by every
// layer of the marketplace service.
//
// Each kind comes as a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// and a struct carrying the offending parameter and an optional cause. The
// struct unwraps to its sentinel, so callers branch with errors.Is and read the
// details with errors.As:
//
//	var nf *errs.ObjectNotFoundError
//	if errors.As(err, &nf) {
//	    log.Printf("%s %v is missing", nf.ParamName, nf.ID)
//	}
//
// Domain packages build their own error types on the same shape.
package errs
