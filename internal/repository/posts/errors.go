package posts

import "errors"

var errDuplicateID = errors.New("duplicate id")
