package impl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/ledger"
	ledgermock "github.com/Decentr-net/blockconnect/internal/ledger/mock"
	"github.com/Decentr-net/blockconnect/internal/ledger/stub"
	"github.com/Decentr-net/blockconnect/internal/service"
	"github.com/Decentr-net/blockconnect/internal/storage"
	"github.com/Decentr-net/blockconnect/internal/storage/memory"
	storagemock "github.com/Decentr-net/blockconnect/internal/storage/mock"
)

var (
	ctx     = context.Background()
	testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func sequentialIDs() func(string) string {
	var n int
	return func(kind string) string {
		n++
		return fmt.Sprintf("%s-test-%d", kind, n)
	}
}

func newTestService(l ledger.Ledger) srv {
	return srv{
		s:     storage.New(memory.New()),
		l:     l,
		now:   func() time.Time { return testNow },
		newID: sequentialIDs(),
	}
}

func connect(t *testing.T, s srv) *entities.User {
	u, err := s.Connect(ctx)
	require.NoError(t, err)
	return u
}

func TestService_Connect(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := ledgermock.NewMockLedger(ctrl)
	s := newTestService(l)

	wallet := ledger.Wallet{Address: "0x00000000000000000000000000000000000abcdef", Signature: "sig_1"}
	registered := &entities.User{
		ID:            "user-new",
		WalletAddress: wallet.Address,
		Followers:     []string{},
		Following:     []string{},
		Tokens:        entities.StartingTokens,
		JoinDate:      testNow,
	}

	l.EXPECT().ConnectWallet(gomock.Any()).Return(wallet, nil).Times(2)
	l.EXPECT().RegisterUser(gomock.Any(), wallet.Address, ledger.Profile{
		Username:    "user_abcdef",
		DisplayName: "New User",
		Bio:         "New to BlockConnect",
		Avatar:      defaultAvatar,
		CoverImage:  defaultCoverImage,
	}).Return(registered, nil)

	u := connect(t, s)
	require.Equal(t, registered, u)

	// reconnecting the same wallet finds the stored user
	u = connect(t, s)
	require.Equal(t, "user-new", u.ID)

	users, err := s.s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, len(storage.DefaultUsers())+1)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-new", cur.ID)
	require.EqualValues(t, 100, cur.Tokens)
}

func TestService_Connect_LedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := ledgermock.NewMockLedger(ctrl)
	s := newTestService(l)

	l.EXPECT().ConnectWallet(gomock.Any()).Return(ledger.Wallet{}, ledger.ErrConnection)

	_, err := s.Connect(ctx)
	require.True(t, errors.Is(err, ledger.ErrConnection))

	_, err = s.CurrentUser(ctx)
	require.True(t, errors.Is(err, service.ErrUnauthenticated))

	users, err := s.s.GetUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultUsers(), users)
}

func TestService_Disconnect(t *testing.T) {
	s := newTestService(stub.New(0))

	connect(t, s)
	require.NoError(t, s.Disconnect(ctx))

	_, err := s.CurrentUser(ctx)
	require.True(t, errors.Is(err, service.ErrUnauthenticated))

	// disconnecting without a session is fine
	require.NoError(t, s.Disconnect(ctx))
}

func TestService_CurrentUser_Fresh(t *testing.T) {
	s := newTestService(stub.New(0))

	u := connect(t, s)
	require.NoError(t, s.Follow(ctx, u.ID, "user-1"))

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"user-1"}, cur.Following)
}

func TestService_RewardTokens(t *testing.T) {
	s := newTestService(stub.New(0))

	u := connect(t, s)
	require.EqualValues(t, 100, u.Tokens)

	require.NoError(t, s.RewardTokens(ctx, u.ID, 25))

	stored, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 125, stored.Tokens)

	slot, err := s.s.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 125, slot.Tokens)

	nn, err := s.ListNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, nn, 1)
	require.Equal(t, entities.TokenNotification, nn[0].Type)
	require.Equal(t, "You received 25 BCT tokens", nn[0].Content)
	require.Nil(t, nn[0].ActionUserID)
}

func TestService_RewardTokens_SeedUser(t *testing.T) {
	s := newTestService(stub.New(0))

	// seed users are unknown to the ledger, the stored balance is incremented
	require.NoError(t, s.RewardTokens(ctx, "user-2", 10))

	u, err := s.GetUser(ctx, "user-2")
	require.NoError(t, err)
	require.EqualValues(t, 900, u.Tokens)

	// the current user slot belongs to nobody and stays empty
	_, err = s.s.GetCurrentUser(ctx)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestService_RewardTokens_Unknown(t *testing.T) {
	s := newTestService(stub.New(0))

	require.NoError(t, s.RewardTokens(ctx, "user-unknown", 25))

	users, err := s.s.GetUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultUsers(), users)

	nn, err := s.s.GetNotifications(ctx)
	require.NoError(t, err)
	require.Empty(t, nn)
}

// failingSaves fails the first n SaveUsers calls.
type failingSaves struct {
	storage.Storage
	n *int
}

func (s failingSaves) InTx(ctx context.Context, f func(storage.Storage) error) error {
	return s.Storage.InTx(ctx, func(st storage.Storage) error {
		return f(failingSaves{Storage: st, n: s.n})
	})
}

func (s failingSaves) SaveUsers(ctx context.Context, users []*entities.User) error {
	if *s.n > 0 {
		*s.n--
		return errors.New("disk is full")
	}

	return s.Storage.SaveUsers(ctx, users)
}

func TestService_RewardTokens_FailedSave(t *testing.T) {
	l := stub.New(0)
	s := newTestService(l)

	u := connect(t, s)

	fails := 1
	s.s = failingSaves{Storage: s.s, n: &fails}

	require.Error(t, s.RewardTokens(ctx, u.ID, 25))

	balance, ok := l.Balance(ctx, u.ID)
	require.True(t, ok)
	require.EqualValues(t, 100, balance)

	nn, err := s.ListNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, nn)

	require.NoError(t, s.RewardTokens(ctx, u.ID, 25))

	stored, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 125, stored.Tokens)

	balance, ok = l.Balance(ctx, u.ID)
	require.True(t, ok)
	require.EqualValues(t, 125, balance)
}

func TestService_Connect_FailedSave(t *testing.T) {
	l := stub.New(0)
	s := newTestService(l)

	fails := 1
	s.s = failingSaves{Storage: s.s, n: &fails}

	_, err := s.Connect(ctx)
	require.Error(t, err)

	m, err := l.Ping(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"accounts": 0}, m)

	_, err = s.CurrentUser(ctx)
	require.True(t, errors.Is(err, service.ErrUnauthenticated))

	u := connect(t, s)
	_, ok := l.Balance(ctx, u.ID)
	require.True(t, ok)
}

func TestService_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := storagemock.NewMockStorage(ctrl)
	s := srv{s: st, l: stub.New(0), now: func() time.Time { return testNow }, newID: sequentialIDs()}

	inTx := func(_ context.Context, f func(storage.Storage) error) error {
		return f(st)
	}

	errTest := errors.New("test")

	t.Run("list posts", func(t *testing.T) {
		st.EXPECT().GetPosts(gomock.Any()).Return(nil, errTest)

		_, err := s.ListPosts(ctx)
		require.True(t, errors.Is(err, errTest))
	})

	t.Run("create post", func(t *testing.T) {
		st.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTx)
		st.EXPECT().GetUsers(gomock.Any()).Return(storage.DefaultUsers(), nil)
		st.EXPECT().GetPosts(gomock.Any()).Return(storage.DefaultPosts(), nil)
		st.EXPECT().SavePosts(gomock.Any(), gomock.Any()).Return(errTest)

		_, err := s.CreatePost(ctx, "user-1", "hello", nil)
		require.True(t, errors.Is(err, errTest))
	})

	t.Run("toggle like notification", func(t *testing.T) {
		st.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTx)
		st.EXPECT().GetPosts(gomock.Any()).Return(storage.DefaultPosts(), nil)
		st.EXPECT().SavePosts(gomock.Any(), gomock.Any()).Return(nil)
		st.EXPECT().GetNotifications(gomock.Any()).Return(nil, errTest)

		_, err := s.ToggleLike(ctx, "post-2", "user-3")
		require.True(t, errors.Is(err, errTest))
	})

	t.Run("current user", func(t *testing.T) {
		st.EXPECT().GetCurrentUser(gomock.Any()).Return(nil, errTest)

		_, err := s.CurrentUser(ctx)
		require.True(t, errors.Is(err, errTest))
		require.False(t, errors.Is(err, service.ErrUnauthenticated))
	})
}
