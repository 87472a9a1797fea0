package service

import (
	"testing"

	"watertracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadBucket(t *testing.T) {
	assert.Equal(t, "12KL", loadBucket(decimal.NewFromInt(12000)))
	assert.Equal(t, "12KL", loadBucket(decimal.NewFromInt(10000)))
	assert.Equal(t, "6KL", loadBucket(decimal.NewFromInt(6000)))
	assert.Equal(t, "6KL", loadBucket(decimal.NewFromInt(4000)))
	assert.Equal(t, "Other", loadBucket(decimal.NewFromInt(3999)))
	assert.Equal(t, "Other", loadBucket(decimal.Zero))
}

func TestBreakdownKeyPipelineWinsOverWaterType(t *testing.T) {
	entry := model.WaterEntry{
		WaterType: model.WaterTypeDrinking,
		Source:    &model.MasterSource{SourceType: model.SourceTypePipeline},
	}
	assert.Equal(t, "Corporation", breakdownKey(entry))
}

func TestBreakdownKeyByWaterType(t *testing.T) {
	vendor := &model.MasterSource{SourceType: model.SourceTypeVendor}

	assert.Equal(t, "Drinking", breakdownKey(model.WaterEntry{WaterType: model.WaterTypeDrinking, Source: vendor}))
	assert.Equal(t, "Normal", breakdownKey(model.WaterEntry{WaterType: model.WaterTypeNormal, Source: vendor}))
	assert.Equal(t, "", breakdownKey(model.WaterEntry{WaterType: "", Source: vendor}))
}
