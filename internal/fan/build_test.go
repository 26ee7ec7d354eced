package fan

import (
	"testing"

	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/gpu/gpumock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBuild(t *testing.T) {
	mc := gomock.NewController(t)
	opener := gpumock.NewMockOpener(mc)

	ids := []gpu.Identity{{GPU: 0, Fan: 0}, {GPU: 0, Fan: 1}}
	defs := make([]config.Profile, 0, len(ids))
	for _, id := range ids {
		ctrl := gpumock.NewMockController(mc)
		opener.EXPECT().Open(id).Return(ctrl, nil)
		defs = append(defs, testDef(id, 2))
	}

	profiles, err := Build(opener, defs)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, ids[0], profiles[0].ID())
	assert.Equal(t, ids[1], profiles[1].ID())
}

func TestBuildPartialFailureClosesOpened(t *testing.T) {
	mc := gomock.NewController(t)
	opener := gpumock.NewMockOpener(mc)

	first := gpumock.NewMockController(mc)
	second := gpumock.NewMockController(mc)
	hwErr := errors.New().New(errors.ErrHardware)

	gomock.InOrder(
		opener.EXPECT().Open(gpu.Identity{GPU: 0, Fan: 0}).Return(first, nil),
		opener.EXPECT().Open(gpu.Identity{GPU: 0, Fan: 1}).Return(second, nil),
		opener.EXPECT().Open(gpu.Identity{GPU: 1, Fan: 0}).Return(nil, hwErr),
	)
	// No RestoreAuto: a failed batch never took control of the fans.
	first.EXPECT().Close().Return(nil)
	second.EXPECT().Close().Return(nil)

	profiles, err := Build(opener, []config.Profile{
		testDef(gpu.Identity{GPU: 0, Fan: 0}, 2),
		testDef(gpu.Identity{GPU: 0, Fan: 1}, 2),
		testDef(gpu.Identity{GPU: 1, Fan: 0}, 2),
	})
	assert.Nil(t, profiles)
	assert.ErrorIs(t, err, hwErr)
}

func TestBuildInvalidCurveClosesSession(t *testing.T) {
	mc := gomock.NewController(t)
	opener := gpumock.NewMockOpener(mc)
	ctrl := gpumock.NewMockController(mc)

	opener.EXPECT().Open(gpu.Identity{}).Return(ctrl, nil)
	ctrl.EXPECT().Close().Return(nil)

	_, err := Build(opener, []config.Profile{{}})
	assert.Equal(t, errors.ErrInvalidCurve, errors.CodeOf(err))
}

func TestBuildRejectsDuplicates(t *testing.T) {
	mc := gomock.NewController(t)
	opener := gpumock.NewMockOpener(mc)
	ctrl := gpumock.NewMockController(mc)

	opener.EXPECT().Open(gpu.Identity{}).Return(ctrl, nil)
	ctrl.EXPECT().Close().Return(nil)

	_, err := Build(opener, []config.Profile{testDef(gpu.Identity{}, 2), testDef(gpu.Identity{}, 3)})
	assert.Equal(t, errors.ErrDuplicateProfile, errors.CodeOf(err))
}

func TestCloseAllVisitsEveryProfile(t *testing.T) {
	mc := gomock.NewController(t)

	profiles := make([]*Profile, 0, 3)
	for fan := 0; fan < 3; fan++ {
		ctrl := gpumock.NewMockController(mc)
		ctrl.EXPECT().RestoreAuto().Return(errors.New().New(errors.ErrHardware))
		ctrl.EXPECT().Close().Return(errors.New().New(errors.ErrHardware))

		p, err := NewProfile(testDef(gpu.Identity{Fan: fan}, 2), ctrl)
		require.NoError(t, err)
		profiles = append(profiles, p)
	}

	err := CloseAll(profiles, true)
	assert.Equal(t, errors.ErrHardware, errors.CodeOf(err))
}
