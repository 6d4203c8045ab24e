package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorctl/connectorctl/internal/config"
	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
	"github.com/connectorctl/connectorctl/internal/transfers"
)

// fakeStore is an in-memory transfers.Store.
type fakeStore struct {
	records map[string]dynamo.FileRecord
}

func newFakeStore(records ...dynamo.FileRecord) *fakeStore {
	s := &fakeStore{records: map[string]dynamo.FileRecord{}}
	for _, r := range records {
		s.records[r.FilePath] = r
	}
	return s
}

func (s *fakeStore) ListByStatus(_ context.Context, status string) ([]dynamo.FileRecord, error) {
	var out []dynamo.FileRecord
	for _, r := range s.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) Enqueue(_ context.Context, filePath string) error {
	s.records[filePath] = dynamo.FileRecord{
		FilePath:   filePath,
		Status:     dynamo.StatusPending,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

func (s *fakeStore) MarkInProgress(_ context.Context, filePath, transferID string) error {
	r := s.records[filePath]
	r.FilePath = filePath
	r.Status = dynamo.StatusInProgress
	r.TransferID = transferID
	s.records[filePath] = r
	return nil
}

func (s *fakeStore) MarkPending(_ context.Context, filePath string) error {
	r := s.records[filePath]
	r.Status = dynamo.StatusPending
	s.records[filePath] = r
	return nil
}

func (s *fakeStore) MarkCompleted(_ context.Context, filePath string) error {
	r := s.records[filePath]
	r.Status = dynamo.StatusCompleted
	s.records[filePath] = r
	return nil
}

// fakeObjects is an in-memory object store.
type fakeObjects struct {
	buckets map[string]bool
	objects map[string][]string
}

func (f *fakeObjects) BucketExists(_ context.Context, bucketName string) (bool, error) {
	return f.buckets[bucketName], nil
}

func (f *fakeObjects) ObjectExists(_ context.Context, bucketName, key string) (bool, error) {
	for _, k := range f.objects[bucketName] {
		if k == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeObjects) ListObjects(_ context.Context, bucketName, prefix string) ([]string, error) {
	var out []string
	for _, k := range f.objects[bucketName] {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	return out, nil
}

func transfersTestConfig() *config.Config {
	cfg := testConfig()
	cfg.Transfers = config.Transfers{
		Bucket:        "partner-landing",
		TrackingTable: "partner-files",
	}
	return cfg
}

func wireTransferFakes(t *testing.T, cfg *config.Config, store *fakeStore, objects *fakeObjects) *fakeTransferClient {
	t.Helper()
	client := &fakeTransferClient{}

	loadConfigFile = func(_ string) (*config.Config, error) { return cfg, nil }
	newTrackingStore = func(_ context.Context, _, table string) (transfers.Store, error) {
		assert.Equal(t, "partner-files", table)
		return store, nil
	}
	newObjectStore = func(_ context.Context, _ string) (objectStore, error) { return objects, nil }
	newTransferClient = func(_ context.Context, _ string) (transfer.Client, error) { return client, nil }

	return client
}

func TestRetrieve_StartsTransferForPending(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore(dynamo.FileRecord{FilePath: "/outbox/a.csv", Status: dynamo.StatusPending})
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)

	output := captureOutput(func() {
		err := Retrieve(context.Background(), "cfg.yaml", nil, "")
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{"retrieve"}, client.transfers)
	assert.Contains(t, output, "Retrieval started: t-retrieve")
	assert.Equal(t, dynamo.StatusInProgress, store.records["/outbox/a.csv"].Status)
}

func TestRetrieve_EnqueuesThenRuns(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)

	captureOutput(func() {
		err := Retrieve(context.Background(), "cfg.yaml", []string{"/outbox/b.csv"}, "")
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{"retrieve"}, client.transfers)
	assert.Equal(t, dynamo.StatusInProgress, store.records["/outbox/b.csv"].Status)
}

func TestRetrieve_MissingBucket(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{}}
	wireTransferFakes(t, transfersTestConfig(), store, objects)

	err := Retrieve(context.Background(), "cfg.yaml", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRetrieve_RequiresTransfersConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }

	err := Retrieve(context.Background(), "cfg.yaml", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfers are not configured")
}

func TestSend_Object(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{
		buckets: map[string]bool{"partner-landing": true},
		objects: map[string][]string{"partner-landing": {"outbox/report.csv"}},
	}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)

	output := captureOutput(func() {
		err := Send(context.Background(), "cfg.yaml", "outbox/report.csv", "")
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{"send"}, client.transfers)
	assert.Contains(t, output, "Transfer started: t-send")
}

func TestSend_MissingObject(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	wireTransferFakes(t, transfersTestConfig(), store, objects)

	err := Send(context.Background(), "cfg.yaml", "outbox/missing.csv", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestSend_EmptyPrefixSweep(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)

	output := captureOutput(func() {
		err := Send(context.Background(), "cfg.yaml", "", "outbox/")
		assert.NoError(t, err)
	})

	assert.Empty(t, client.transfers)
	assert.Contains(t, output, "Nothing to send")
}

func TestCheck_CompletesAgedRecords(t *testing.T) {
	saveAndRestoreFactories(t)

	old := time.Now().Add(-10 * time.Minute).UTC().Format(time.RFC3339)
	store := newFakeStore(dynamo.FileRecord{
		FilePath:  "/outbox/a.csv",
		Status:    dynamo.StatusInProgress,
		UpdatedAt: old,
	})
	objects := &fakeObjects{}
	wireTransferFakes(t, transfersTestConfig(), store, objects)

	output := captureOutput(func() {
		err := Check(context.Background(), "cfg.yaml")
		assert.NoError(t, err)
	})

	assert.Equal(t, dynamo.StatusCompleted, store.records["/outbox/a.csv"].Status)
	assert.Contains(t, output, "completed 1")
}

func TestCheck_StoreConstructionError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return transfersTestConfig(), nil }
	newTrackingStore = func(_ context.Context, _, _ string) (transfers.Store, error) {
		return nil, errors.New("no credentials")
	}

	err := Check(context.Background(), "cfg.yaml")
	require.Error(t, err)
}

func TestRetrieve_RemoteDirDiscovers(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)
	client.listing = []string{"/uploads/a.csv", "/uploads/b.csv"}

	output := captureOutput(func() {
		err := Retrieve(context.Background(), "cfg.yaml", nil, "/uploads")
		assert.NoError(t, err)
	})

	assert.Equal(t, []string{"retrieve"}, client.transfers)
	assert.Contains(t, output, "Discovered 2 file(s) in /uploads")
	assert.Equal(t, dynamo.StatusInProgress, store.records["/uploads/a.csv"].Status)
	assert.Equal(t, dynamo.StatusInProgress, store.records["/uploads/b.csv"].Status)
}

func TestRetrieve_RemoteDirEmpty(t *testing.T) {
	saveAndRestoreFactories(t)

	store := newFakeStore()
	objects := &fakeObjects{buckets: map[string]bool{"partner-landing": true}}
	client := wireTransferFakes(t, transfersTestConfig(), store, objects)

	output := captureOutput(func() {
		err := Retrieve(context.Background(), "cfg.yaml", nil, "/uploads")
		assert.NoError(t, err)
	})

	assert.Empty(t, client.transfers)
	assert.Contains(t, output, "No files found in /uploads")
}

func TestCheck_ResolvesFromTransferResults(t *testing.T) {
	saveAndRestoreFactories(t)

	fresh := time.Now().UTC().Format(time.RFC3339)
	store := newFakeStore(
		dynamo.FileRecord{FilePath: "/uploads/done.csv", Status: dynamo.StatusInProgress, TransferID: "t-1", UpdatedAt: fresh},
		dynamo.FileRecord{FilePath: "/uploads/bad.csv", Status: dynamo.StatusInProgress, TransferID: "t-1", UpdatedAt: fresh},
	)
	client := wireTransferFakes(t, transfersTestConfig(), store, &fakeObjects{})
	client.results = map[string][]transfer.FileResult{
		"t-1": {
			{FilePath: "/uploads/done.csv", Status: transfer.FileResultCompleted},
			{FilePath: "/uploads/bad.csv", Status: transfer.FileResultFailed, FailureMessage: "permission denied"},
		},
	}

	output := captureOutput(func() {
		err := Check(context.Background(), "cfg.yaml")
		assert.NoError(t, err)
	})

	assert.Equal(t, dynamo.StatusCompleted, store.records["/uploads/done.csv"].Status)
	assert.Equal(t, dynamo.StatusPending, store.records["/uploads/bad.csv"].Status)
	assert.Contains(t, output, "completed 1, failed 1")
	assert.Contains(t, output, "failed, reset to pending: /uploads/bad.csv")
}
