package hooks

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

type NewLabTest struct {
	TestName        string
	TestType        string
	ScheduledDate   int64
	LabName         string
	LabAddress      string
	FastingRequired bool
	Instructions    string
}

type LabTests struct {
	base
	Items *live.Query[[]models.LabTest]
}

func UseLabTests(ctx context.Context, env Env) *LabTests {
	l := &LabTests{base: newBase(ctx, env, "labtests")}
	l.Items = userRead(ctx, &l.base, api.LabTests, func(ctx context.Context, userID string) ([]models.LabTest, error) {
		resp, err := env.Backend.GetLabTests(ctx, &api.GetLabTestsRequest{UserID: userID})
		if err != nil {
			return nil, err
		}
		return resp.LabTests, nil
	})
	return l
}

func (l *LabTests) AddLabTest(ctx context.Context, in NewLabTest) (Outcome, error) {
	if o, ok := l.gate(); !ok {
		return o, nil
	}
	_, err := l.env.Backend.CreateLabTest(ctx, &api.CreateLabTestRequest{
		UserID:          l.userID(),
		TestName:        in.TestName,
		TestType:        in.TestType,
		ScheduledDate:   in.ScheduledDate,
		LabName:         in.LabName,
		LabAddress:      in.LabAddress,
		FastingRequired: in.FastingRequired,
		Instructions:    in.Instructions,
	})
	return called(err)
}

func (l *LabTests) UpdateLabTest(ctx context.Context, labTestID string, updates models.Patch) (Outcome, error) {
	if o, ok := l.gate(); !ok {
		return o, nil
	}
	if labTestID == "" {
		return OutcomeMissingID, nil
	}
	_, err := l.env.Backend.UpdateLabTest(ctx, &api.UpdateLabTestRequest{LabTestID: labTestID, Updates: updates})
	return called(err)
}

func (l *LabTests) Close() error {
	return errors.Join(l.release(), l.Items.Close())
}
