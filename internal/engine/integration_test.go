//go:build integration

package engine

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RealEngine(t *testing.T) {
	apiKey := os.Getenv("ENGINE_API_KEY")
	baseURL := os.Getenv("ENGINE_BASE_URL")

	if apiKey == "" || baseURL == "" {
		t.Skip("ENGINE_API_KEY and ENGINE_BASE_URL required for integration tests")
	}

	ctx := context.Background()
	client := NewClient(baseURL, apiKey, logrus.New())
	service := NewService(client, logrus.New())

	// Upload a throwaway course document
	err := service.AddCourseDocument(ctx, "integration-test", "integration-test.txt",
		"Integration Test 101 covers uploading and querying a single document.")
	require.NoError(t, err)

	// Ask about it
	response, err := service.Answer(ctx, "What does Integration Test 101 cover?", "", nil)
	require.NoError(t, err)
	require.NotNil(t, response)
	require.NotEmpty(t, response.Answer)

	// Cleanup
	service.RemoveCourse(ctx, "integration-test")
}
