package common

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 issues a time ordered unique int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID issues a time ordered unique id string.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// NextID issues a prefixed entity id, e.g. NextID("P") -> "P1745...".
// Ids are monotonic per process and stable across a snapshot save/restore
// cycle, since snowflake ids embed the issue timestamp.
func NextID(prefix string) string {
	return prefix + snowflakeNode.Generate().String()
}
