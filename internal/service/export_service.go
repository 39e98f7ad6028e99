package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
)

// exportBatchSize 导出时每批拉取的成员数
const exportBatchSize = 500

// ExportService 数据导出业务接口
type ExportService interface {
	ExportMemberRoster(ctx context.Context) (*excelize.File, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportMemberRoster 导出全量成员花名册
func (s *exportService) ExportMemberRoster(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "成员花名册"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"成员ID", "姓名", "邮箱", "学工号", "性别", "生日", "角色", "审批状态", "审批理由", "邮箱已验证", "注册时间"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	offset := 0
	for {
		members, total, err := s.repo.Member.List(ctx, offset, exportBatchSize)
		if err != nil {
			return nil, err
		}
		for i := range members {
			if err := s.writeMemberRow(f, sheet, row, &members[i]); err != nil {
				return nil, err
			}
			row++
		}
		offset += len(members)
		if int64(offset) >= total || len(members) == 0 {
			break
		}
	}

	s.logger.Info("成员花名册导出完成", zap.Int("count", row-2))
	return f, nil
}

func (s *exportService) writeMemberRow(f *excelize.File, sheet string, row int, m *model.Member) error {
	birth := ""
	if m.Birth != nil {
		birth = m.Birth.Format("2006-01-02")
	}

	values := []interface{}{
		m.ID,
		m.Name,
		m.Email,
		m.GroupID,
		string(m.Sex),
		birth,
		string(m.MemberRole),
		string(m.Approved),
		m.ApprovedReason,
		m.EmailConfirmed,
		m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("写入单元格 %s 失败: %w", cell, err)
		}
	}
	return nil
}
