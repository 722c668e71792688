package records

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"

	"liyu1981.xyz/dialog-service/pkg/db"
	"liyu1981.xyz/dialog-service/pkg/records/mocks"
)

type testMocks struct {
	Condition *mocks.MockICondition
	Alert     *mocks.MockIAlert
	Patient   *mocks.MockIPatient
	Notifier  *mocks.MockNotifier
}

func GetMockRecordsWithMemorySqliteDialector(t *testing.T, useMockCondition, useMockAlert, useMockPatient bool) (
	*gomock.Controller,
	*Records,
	testMocks,
) {
	ctrl := gomock.NewController(t)

	m := testMocks{
		Condition: mocks.NewMockICondition(ctrl),
		Alert:     mocks.NewMockIAlert(ctrl),
		Patient:   mocks.NewMockIPatient(ctrl),
		Notifier:  mocks.NewMockNotifier(ctrl),
	}
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	r := New(*dbInstance)

	opts := ServiceOpts{}
	if useMockCondition {
		opts.Condition = m.Condition
	}
	if useMockAlert {
		opts.Alert = m.Alert
	}
	if useMockPatient {
		opts.Patient = m.Patient
	}
	r.WithServices(opts)

	return ctrl, r, m
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

func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		lobj, ok := l.(map[string]any)
		if ok && lobj["msg"] == msg {
			return lobj
		}
	}
	return nil
}
