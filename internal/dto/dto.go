package dto

type CreateCheckoutSessionRequest struct {
	ParcelID      string  `json:"parcelId"`
	Amount        float64 `json:"amount"`
	ParcelName    string  `json:"parcelName"`
	CustomerEmail string  `json:"customerEmail"`
}

type CreateCheckoutSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
	ParcelID  string `json:"parcelId"`
}

type VerifyPaymentResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TrackingNo string `json:"tracking_no"`
}

type ManualPayRequest struct {
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
}

type CreateParcelRequest struct {
	SenderName      string  `json:"senderName"`
	SenderPhone     string  `json:"senderPhone"`
	SenderAddress   string  `json:"senderAddress"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverPhone   string  `json:"receiverPhone"`
	ReceiverAddress string  `json:"receiverAddress"`
	ParcelType      string  `json:"parcelType"`
	WeightKg        float64 `json:"weightKg"`
	Cost            float64 `json:"cost"`
}

type UpdateParcelRequest struct {
	SenderName      *string  `json:"senderName"`
	SenderPhone     *string  `json:"senderPhone"`
	SenderAddress   *string  `json:"senderAddress"`
	ReceiverName    *string  `json:"receiverName"`
	ReceiverPhone   *string  `json:"receiverPhone"`
	ReceiverAddress *string  `json:"receiverAddress"`
	ParcelType      *string  `json:"parcelType"`
	WeightKg        *float64 `json:"weightKg"`
	Cost            *float64 `json:"cost"`
}

type UpsertUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
