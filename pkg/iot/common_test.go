package iot

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/NaufalHusnianto/Agnivolt/pkg/db"
	"github.com/NaufalHusnianto/Agnivolt/pkg/iot/mocks"
	"github.com/NaufalHusnianto/Agnivolt/pkg/remote"
)

// GetTestIOTWithMemoryStores builds an IOT backed by a private in-memory
// sqlite database and an in-memory remote tree. The returned registry mock
// replaces the real registry only when useMockIRegistry is set.
func GetTestIOTWithMemoryStores(t *testing.T, useMockIRegistry bool) (
	*gomock.Controller,
	*IOT,
	*remote.MemoryStore,
	*mocks.MockIRegistry,
) {
	ctrl := gomock.NewController(t)

	dbInstance, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	store := remote.NewMemoryStore()
	iotInstance := &IOT{KV: dbInstance.KVStore(), Remote: store}
	iotInstance.WithDefaultServices()

	mockIRegistry := mocks.NewMockIRegistry(ctrl)
	if useMockIRegistry {
		iotInstance.WithServices(ServiceOpts{Registry: mockIRegistry})
	}

	return ctrl, iotInstance, store, mockIRegistry
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
