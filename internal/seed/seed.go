package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	regiondomain "github.com/harvestcover/seasonworker/internal/region/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminName = "관리자"
	defaultAdminPin  = "00000000"
)

// baseRegions is the minimal scope catalog a fresh portal needs so that the
// login dropdowns are not empty. Each district gets its own manager pair
// whose PIN matches the district for first-run access.
var baseRegions = map[string][]string{
	"경기도":     {"이천시", "포천시"},
	"강원특별자치도": {"양구군", "홍천군"},
}

// EnsureBaseData is idempotent: rows are looked up by their natural keys and
// only inserted when missing. Safe to run on every startup.
func EnsureBaseData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAdmin(ctx, tx, node); err != nil {
			return err
		}
		for regionName, districts := range baseRegions {
			region, err := ensureRegion(ctx, tx, node, regionName)
			if err != nil {
				return err
			}
			for _, district := range districts {
				if err := ensureLocalGovernment(ctx, tx, node, region, district); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func ensureAdmin(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var admin authdomain.Admin
	err := tx.WithContext(ctx).Where("pin = ?", defaultAdminPin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	admin = authdomain.Admin{
		ID:        node.Generate(),
		Name:      defaultAdminName,
		Pin:       defaultAdminPin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&admin).Error
}

func ensureRegion(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (regiondomain.Region, error) {
	var region regiondomain.Region
	err := tx.WithContext(ctx).Where("region_name = ?", name).First(&region).Error
	if err == nil {
		return region, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return regiondomain.Region{}, err
	}

	now := time.Now().UTC()
	region = regiondomain.Region{
		ID:         node.Generate(),
		RegionName: name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.WithContext(ctx).Create(&region).Error; err != nil {
		return regiondomain.Region{}, err
	}
	return region, nil
}

func ensureLocalGovernment(ctx context.Context, tx *gorm.DB, node *snowflake.Node, region regiondomain.Region, district string) error {
	var lg regiondomain.LocalGovernment
	err := tx.WithContext(ctx).
		Where("region_name = ? AND local_government_name = ?", region.RegionName, district).
		First(&lg).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var admin authdomain.Admin
	if err := tx.WithContext(ctx).Where("pin = ?", defaultAdminPin).First(&admin).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	publicManager := managerdomain.PublicManager{
		ID:        node.Generate(),
		AdminID:   admin.ID,
		Pin:       district,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&publicManager).Error; err != nil {
		return err
	}

	generalManager := managerdomain.GeneralManager{
		ID:        node.Generate(),
		AdminID:   admin.ID,
		Pin:       district,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&generalManager).Error; err != nil {
		return err
	}

	lg = regiondomain.LocalGovernment{
		ID:                  node.Generate(),
		RegionID:            region.ID,
		RegionName:          region.RegionName,
		LocalGovernmentName: district,
		ManagerPublicID:     publicManager.ID,
		ManagerGeneralID:    generalManager.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	return tx.WithContext(ctx).Create(&lg).Error
}
