package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// fakeBackend implements only what the tests call; anything else panics on
// the nil embedded Service.
type fakeBackend struct {
	Service

	lastUpdate *UpdateReminderRequest
}

func (f *fakeBackend) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (f *fakeBackend) GetCartItems(_ context.Context, in *GetCartItemsRequest) (*GetCartItemsResponse, error) {
	if in.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id required")
	}
	return &GetCartItemsResponse{Items: []models.CartItem{
		{ID: "c1", UserID: in.UserID, MedicineID: "m1", Quantity: 2, Medicine: &models.Medicine{ID: "m1", Name: "Paracetamol", Price: 1.5}},
	}}, nil
}

func (f *fakeBackend) UpdateReminder(_ context.Context, in *UpdateReminderRequest) (*Empty, error) {
	f.lastUpdate = in
	return &Empty{}, nil
}

func (f *fakeBackend) Subscribe(in *SubscribeRequest, stream SubscribeServer) error {
	for i, tp := range in.Topics {
		if err := stream.Send(&Event{Topic: tp, At: int64(i + 1)}); err != nil {
			return err
		}
	}
	return nil
}

func startServer(t *testing.T, srv BackendServer) *BackendClient {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := grpc.NewServer()
	RegisterBackendServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewBackendClient(conn)
}

func TestRoundTrip_Unary(t *testing.T) {
	c := startServer(t, &fakeBackend{})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pong, err := c.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	resp, err := c.GetCartItems(ctx, &GetCartItemsRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "u1", resp.Items[0].UserID)
	require.NotNil(t, resp.Items[0].Medicine)
	assert.Equal(t, "Paracetamol", resp.Items[0].Medicine.Name)
}

func TestRoundTrip_StatusIsPreserved(t *testing.T) {
	c := startServer(t, &fakeBackend{})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := c.GetCartItems(ctx, &GetCartItemsRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRoundTrip_PatchTravelsAsJSON(t *testing.T) {
	f := &fakeBackend{}
	c := startServer(t, f)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := c.UpdateReminder(ctx, &UpdateReminderRequest{
		ReminderID: "r1",
		Updates:    models.Patch{"isActive": false, "title": "Evening dose"},
	})
	require.NoError(t, err)
	require.NotNil(t, f.lastUpdate)
	assert.Equal(t, "r1", f.lastUpdate.ReminderID)
	assert.Equal(t, false, f.lastUpdate.Updates["isActive"])
	assert.Equal(t, "Evening dose", f.lastUpdate.Updates["title"])
}

func TestRoundTrip_Subscribe(t *testing.T) {
	c := startServer(t, &fakeBackend{})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	topics := []Topic{UserTopic(CartItems, "u1"), CatalogTopic(Medicines)}
	stream, err := c.Subscribe(ctx, &SubscribeRequest{Topics: topics})
	require.NoError(t, err)

	for i, want := range topics {
		ev, err := stream.Recv()
		require.NoError(t, err)
		assert.Equal(t, want, ev.Topic)
		assert.Equal(t, int64(i+1), ev.At)
	}
}
