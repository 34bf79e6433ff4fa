package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentSettings holds one creator's negotiation guardrails plus escalation and
// notification preferences. Rate card entries live in their own table.
type AgentSettings struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID `gorm:"column:creator_id;type:uuid;not null;uniqueIndex"`

	MinDealAmount         int64 `gorm:"column:min_deal_amount;not null;default:0"`
	AutoApprovalThreshold int64 `gorm:"column:auto_approval_threshold;not null;default:0"`
	UsageRightsApproval   bool  `gorm:"column:usage_rights_approval;not null;default:true"`
	TimelineApproval      bool  `gorm:"column:timeline_approval;not null;default:true"`
	AutoDeclineNonAligned bool  `gorm:"column:auto_decline_non_aligned;not null;default:true"`

	EscalateHighValueDeals  bool    `gorm:"column:escalate_high_value_deals;not null;default:true"`
	EscalateUnusualTerms    bool    `gorm:"column:escalate_unusual_terms;not null;default:true"`
	EscalatePaymentDelays   bool    `gorm:"column:escalate_payment_delays;not null;default:true"`
	EscalateNewBrandInquiry bool    `gorm:"column:escalate_new_brand_inquiry;not null;default:false"`
	SMSNotifications        bool    `gorm:"column:sms_notifications;not null;default:true"`
	EmailNotifications      bool    `gorm:"column:email_notifications;not null;default:true"`
	NotificationPhoneNumber *string `gorm:"column:notification_phone_number"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (AgentSettings) TableName() string {
	return "agent_settings"
}
