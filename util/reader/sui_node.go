package reader

import (
	"context"

	"github.com/tranvictor/suiprofile/common"
)

type SuiNode interface {
	NodeName() string
	NodeURL() string
	DevInspectTransactionBlock(ctx context.Context, sender string, txBytes []byte) (*common.InspectionResult, error)
	MultiGetObjects(ctx context.Context, ids []string) ([]common.RawObject, error)
}
