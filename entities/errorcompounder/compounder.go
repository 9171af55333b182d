//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package errorcompounder

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCompounder collects errors from independent checks and combines
// them into a single error at the end.
type ErrorCompounder struct {
	errors []error
}

func New() *ErrorCompounder {
	return &ErrorCompounder{}
}

func (ec *ErrorCompounder) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

func (ec *ErrorCompounder) Addf(format string, a ...any) {
	ec.errors = append(ec.errors, fmt.Errorf(format, a...))
}

func (ec *ErrorCompounder) AddWrapf(err error, format string, a ...any) {
	if err != nil {
		ec.errors = append(ec.errors, errors.Wrapf(err, format, a...))
	}
}

func (ec *ErrorCompounder) Empty() bool {
	return len(ec.errors) == 0
}

func (ec *ErrorCompounder) Len() int {
	return len(ec.errors)
}

func (ec *ErrorCompounder) First() error {
	if len(ec.errors) == 0 {
		return nil
	}
	return ec.errors[0]
}

func (ec *ErrorCompounder) ToError() error {
	if len(ec.errors) == 0 {
		return nil
	}

	var msg strings.Builder
	for i, err := range ec.errors {
		if i != 0 {
			msg.WriteString(", ")
		}
		msg.WriteString(err.Error())
	}

	return errors.New(msg.String())
}
