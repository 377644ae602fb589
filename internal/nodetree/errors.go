package nodetree

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "moncollect/internal/errors"
)

func cyclicParentError(ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return appErrors.New(appErrors.CodeInvalidNodeTree,
		fmt.Sprintf("cyclic parent chain detected: %s", strings.Join(parts, " -> ")), nil)
}

func duplicateNodeError(id int64) error {
	return appErrors.New(appErrors.CodeInvalidNodeTree, fmt.Sprintf("duplicate node id %d", id), nil)
}
